package service

import "errors"

var (
	errMissingHeader      = errors.New("the Authorization header was missing")
	errHeaderNotUTF8      = errors.New("the Authorization header was not valid UTF-8")
	errNotBasicScheme     = errors.New("the Authorization scheme was not Basic")
	errCredentialsNotUTF8 = errors.New("decoded Basic credentials were not valid UTF-8")
	errMissingSeparator   = errors.New("no colon separator in Basic credentials")

	errUnknownUsername = errors.New("unknown username")
	errPoolClosed      = errors.New("verification pool is shut down")
)
