package main

import (
	"testing"

	"catalog-backend/interfaces/http/rest/middleware"

	"github.com/stretchr/testify/assert"
)

func TestSetIdentityHeaders_StripsForgedLowercaseCopies(t *testing.T) {
	// The gateway delivers header keys lowercased; a case-sensitive strip
	// would let these survive and be canonicalized into the trusted form.
	headers := map[string]string{
		"x-gateway-authorized": "true",
		"x-user-username":      "mallory",
		"x-user-groups":        "admins",
		"content-type":         "application/json",
	}

	headers = setIdentityHeaders(headers, nil)

	assert.Equal(t, map[string]string{"content-type": "application/json"}, headers)
}

func TestSetIdentityHeaders_LiftsAuthorizerClaims(t *testing.T) {
	headers := map[string]string{
		"x-gateway-authorized": "true",
		"x-user-groups":        "admins",
	}
	claims := map[string]string{
		"cognito:username": "alice",
		"cognito:groups":   "editors",
	}

	headers = setIdentityHeaders(headers, claims)

	assert.Equal(t, "true", headers[middleware.HeaderGatewayAuthorized])
	assert.Equal(t, "alice", headers[middleware.HeaderUsername])
	assert.Equal(t, "editors", headers[middleware.HeaderGroups])
}

func TestSetIdentityHeaders_NoClaimsLeavesNoIdentity(t *testing.T) {
	headers := setIdentityHeaders(nil, map[string]string{})

	assert.Empty(t, headers)
}
