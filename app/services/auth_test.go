package services_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xcursi322/prakt/app/models"
	"github.com/xcursi322/prakt/app/services"
	"github.com/xcursi322/prakt/config"
	"github.com/xcursi322/prakt/internal/testdb"
	"github.com/xcursi322/prakt/pkg/auth"
)

func TestRegisterCreatesActiveCustomer(t *testing.T) {
	testdb.Open(t)
	c, err := services.NewAuthService().Register(services.RegisterInput{
		Username: "andriy", Email: "andriy@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.True(t, c.IsActive)
	assert.False(t, c.IsAdmin)
	assert.True(t, strings.HasPrefix(c.Password, "$2"))
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := testdb.Open(t)
	newCustomer(t, db, "andriy", false)

	_, err := services.NewAuthService().Register(services.RegisterInput{
		Username: "andriy", Email: "ANDRIY@example.com", Password: "password123",
	})

	var fields services.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "email")
}

func TestAuthenticate(t *testing.T) {
	db := testdb.Open(t)
	newCustomer(t, db, "maria", false)
	svc := services.NewAuthService()

	c, err := svc.Authenticate(context.Background(), "maria", "password123")
	require.NoError(t, err)
	assert.Equal(t, "maria", c.Username)

	_, err = svc.Authenticate(context.Background(), "maria", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func legacyCustomer(t *testing.T, stored string) (*gorm.DB, models.Customer) {
	t.Helper()
	db := testdb.Open(t)
	c := models.Customer{Username: "legacy", Email: "legacy@example.com", Password: stored, IsActive: true}
	require.NoError(t, db.Create(&c).Error)
	return db, c
}

func TestAuthenticateUpgradesSHA256Password(t *testing.T) {
	sum := sha256.Sum256([]byte("oldsecret"))
	db, c := legacyCustomer(t, hex.EncodeToString(sum[:]))

	_, err := services.NewAuthService().Authenticate(context.Background(), "legacy", "oldsecret")
	require.NoError(t, err)

	var got models.Customer
	require.NoError(t, db.First(&got, c.ID).Error)
	assert.Equal(t, auth.PasswordOK, auth.VerifyPassword(got.Password, "oldsecret", false))
}

func TestAuthenticateUpgradesPlaintextPassword(t *testing.T) {
	db, c := legacyCustomer(t, "oldsecret")

	_, err := services.NewAuthService().Authenticate(context.Background(), "legacy", "oldsecret")
	require.NoError(t, err)

	var got models.Customer
	require.NoError(t, db.First(&got, c.ID).Error)
	assert.NotEqual(t, "oldsecret", got.Password)
	assert.True(t, auth.CheckPassword(got.Password, "oldsecret"))
}

func TestAuthenticateLegacyDisabled(t *testing.T) {
	_, _ = legacyCustomer(t, "oldsecret")
	config.Set("LEGACY_PASSWORD_UPGRADE", "false")
	t.Cleanup(func() { config.Set("LEGACY_PASSWORD_UPGRADE", "true") })

	_, err := services.NewAuthService().Authenticate(context.Background(), "legacy", "oldsecret")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthenticateRejectsInactive(t *testing.T) {
	db := testdb.Open(t)
	c := newCustomer(t, db, "blocked", false)
	require.NoError(t, db.Model(&models.Customer{}).Where("id = ?", c.ID).Update("is_active", false).Error)

	_, err := services.NewAuthService().Authenticate(context.Background(), "blocked", "password123")
	assert.ErrorIs(t, err, services.ErrInactive)
}

func TestIssueTokenCarriesRole(t *testing.T) {
	db := testdb.Open(t)
	newCustomer(t, db, "boss", true)

	token, c, err := services.NewAuthService().IssueToken(context.Background(), services.LoginInput{Username: "boss", Password: "password123"})
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, c.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestUpdateProfileKeepsEmailUnique(t *testing.T) {
	db := testdb.Open(t)
	a := newCustomer(t, db, "a_user", false)
	newCustomer(t, db, "b_user", false)
	svc := services.NewAuthService()

	_, err := svc.UpdateProfile(a.ID, services.ProfileInput{Email: "b_user@example.com"})
	var fields services.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "email")

	got, err := svc.UpdateProfile(a.ID, services.ProfileInput{Email: "a_user@example.com", City: "Lviv"})
	require.NoError(t, err)
	assert.Equal(t, "Lviv", got.City)
}

func TestLoginAndLogoutKeepCart(t *testing.T) {
	sess := newSession()
	putInCart(t, sess, services.CartLine{ProductID: 1, Quantity: 2})
	before := sess.ID()

	require.NoError(t, services.LoginSession(sess, models.Customer{ID: 9, Username: "nazar"}))
	assert.NotEqual(t, before, sess.ID())
	id, ok := services.CurrentCustomerID(sess)
	assert.True(t, ok)
	assert.Equal(t, uint(9), id)
	assert.Equal(t, 2, services.LoadCart(sess).Quantity(1))

	services.LogoutSession(sess)
	_, ok = services.CurrentCustomerID(sess)
	assert.False(t, ok)
	assert.Equal(t, 2, services.LoadCart(sess).Quantity(1))
}
