package logger

import (
	"regexp"
)

const (
	awsKeyPattern          = `(?i)(aws_key_id|aws_secret_key|access_key_id|secret_access_key)\s*=\s*'([^']+)'`
	sasTokenPattern        = `(?i)(sig|signature|AWSAccessKeyId|password|passcode)=(?P<secret>[a-z0-9%/+]{16,})`
	connectionTokenPattern = `(?i)(token|session_token|access_token)([\'\"\s:=]+)([a-z0-9=/_\-\+]{8,})`
	passwordPattern        = `(?i)(password|pwd)([\'\"\s:=]+)([a-z0-9!\"#\$%&\\\'\(\)\*\+\,-\./:;<=>\?\@\[\]\^_\{\|\}~]{8,})`
	dsnPasswordPattern     = `([^/:]+):([^@/:]{3,})@`
	credentialsKeyPattern  = `(?i)(secretAccessKey|accountKey|privateKeyData)"\s*:\s*"([^"]{8,})"`
)

var (
	awsKeyRegexp          = regexp.MustCompile(awsKeyPattern)
	sasTokenRegexp        = regexp.MustCompile(sasTokenPattern)
	connectionTokenRegexp = regexp.MustCompile(connectionTokenPattern)
	passwordRegexp        = regexp.MustCompile(passwordPattern)
	dsnPasswordRegexp     = regexp.MustCompile(dsnPasswordPattern)
	credentialsKeyRegexp  = regexp.MustCompile(credentialsKeyPattern)
)

type secretmasker string

func (s secretmasker) maskConnectionToken() secretmasker {
	return secretmasker(connectionTokenRegexp.ReplaceAllString(s.String(), "$1${2}****"))
}

func (s secretmasker) maskPassword() secretmasker {
	return secretmasker(passwordRegexp.ReplaceAllString(s.String(), "$1${2}****"))
}

func (s secretmasker) maskDsnPassword() secretmasker {
	return secretmasker(dsnPasswordRegexp.ReplaceAllString(s.String(), "$1:****@"))
}

func (s secretmasker) maskAwsKey() secretmasker {
	return secretmasker(awsKeyRegexp.ReplaceAllString(s.String(), "${1}='****'"))
}

func (s secretmasker) maskSasToken() secretmasker {
	return secretmasker(sasTokenRegexp.ReplaceAllString(s.String(), "${1}=****"))
}

func (s secretmasker) maskCredentialsKey() secretmasker {
	return secretmasker(credentialsKeyRegexp.ReplaceAllString(s.String(), `${1}": "****"`))
}

func (s secretmasker) String() string {
	return string(s)
}

// MaskSecrets masks passwords, tokens and storage credentials in text.
func MaskSecrets(text string) string {
	return secretmasker(text).
		maskConnectionToken().
		maskPassword().
		maskDsnPassword().
		maskSasToken().
		maskAwsKey().
		maskCredentialsKey().
		String()
}
