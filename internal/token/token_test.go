package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "gatepass/pkg/domain-errors"
)

func TestIssueAndValidateRoundTrip(t *testing.T) {
	svc := NewService("test-signing-key", "gatepass")

	signed, err := svc.IssueStationToken("station-3", false, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "station-3", claims.StationID)
	assert.Empty(t, claims.Role)
}

func TestAdminRoleSurvivesRoundTrip(t *testing.T) {
	svc := NewService("test-signing-key", "gatepass")

	signed, err := svc.IssueStationToken("front-desk", true, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)

	mwClaims, err := NewMiddlewareAdapter(svc).ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "front-desk", mwClaims.StationID)
	assert.True(t, mwClaims.Admin)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewService("test-signing-key", "gatepass")

	signed, err := svc.IssueStationToken("station-3", false, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateRejectsWrongKeyAndIssuer(t *testing.T) {
	svc := NewService("test-signing-key", "gatepass")
	other := NewService("other-key", "gatepass")
	otherIssuer := NewService("test-signing-key", "someone-else")

	signed, err := other.IssueStationToken("station-3", false, time.Hour)
	require.NoError(t, err)
	_, err = svc.ValidateToken(signed)
	assert.Error(t, err, "wrong signing key")

	signed, err = otherIssuer.IssueStationToken("station-3", false, time.Hour)
	require.NoError(t, err)
	_, err = svc.ValidateToken(signed)
	assert.Error(t, err, "wrong issuer")

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
