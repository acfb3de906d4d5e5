package identity

import (
	"context"

	"github.com/Nerzal/gocloak/v13"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/barberbook/booking-api/internal/config"
	"github.com/barberbook/booking-api/internal/httperr"
)

// KeycloakProvider talks to a Keycloak-compatible OpenID Connect server.
// The client is stateless and safe for concurrent use.
type KeycloakProvider struct {
	client        *gocloak.GoCloak
	realm         string
	clientID      string
	clientSecret  string
	adminUser     string
	adminPassword string
}

func NewKeycloakProvider(cfg *config.Config) *KeycloakProvider {
	return &KeycloakProvider{
		client:        gocloak.NewClient(cfg.KeycloakServerURL),
		realm:         cfg.KeycloakRealm,
		clientID:      cfg.KeycloakClientID,
		clientSecret:  cfg.KeycloakClientSecret,
		adminUser:     cfg.KeycloakAdminUser,
		adminPassword: cfg.KeycloakAdminPassword,
	}
}

func (p *KeycloakProvider) adminToken(ctx context.Context) (string, error) {
	token, err := p.client.LoginAdmin(ctx, p.adminUser, p.adminPassword, p.realm)
	if err != nil {
		return "", httperr.ErrBusiness(httperr.CodeIdentityProvider)
	}
	return token.AccessToken, nil
}

func (p *KeycloakProvider) Authenticate(ctx context.Context, username, password string) (string, error) {
	token, err := p.client.Login(ctx, p.clientID, p.clientSecret, p.realm, username, password)
	if err != nil {
		return "", httperr.ErrBusiness(httperr.CodeInvalidCredentials)
	}
	return token.AccessToken, nil
}

func (p *KeycloakProvider) Verify(ctx context.Context, accessToken string) (*Principal, error) {
	result, err := p.client.RetrospectToken(ctx, accessToken, p.clientID, p.clientSecret, p.realm)
	if err != nil || result.Active == nil || !*result.Active {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidToken)
	}

	info, err := p.client.GetUserInfo(ctx, accessToken, p.realm)
	if err != nil || info.Sub == nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidToken)
	}
	if _, err := uuid.Parse(*info.Sub); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidToken)
	}

	principal := &Principal{
		ExternalID: *info.Sub,
		Roles:      rolesFromToken(accessToken),
	}
	if info.PreferredUsername != nil {
		principal.Username = *info.PreferredUsername
	}
	if info.Email != nil {
		principal.Email = *info.Email
	}

	return principal, nil
}

// rolesFromToken reads realm roles out of the already-introspected token.
// The signature was verified server-side, so an unverified parse is enough.
func rolesFromToken(accessToken string) []string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return nil
	}

	realmAccess, ok := claims["realm_access"].(map[string]any)
	if !ok {
		return nil
	}
	rawRoles, ok := realmAccess["roles"].([]any)
	if !ok {
		return nil
	}

	roles := make([]string, 0, len(rawRoles))
	for _, r := range rawRoles {
		if s, ok := r.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}

func (p *KeycloakProvider) CreateAccount(ctx context.Context, acc Account) (string, error) {
	token, err := p.adminToken(ctx)
	if err != nil {
		return "", err
	}

	id, err := p.client.CreateUser(ctx, token, p.realm, gocloak.User{
		Username:  gocloak.StringP(acc.Username),
		Email:     gocloak.StringP(acc.Email),
		FirstName: gocloak.StringP(acc.FirstName),
		LastName:  gocloak.StringP(acc.LastName),
		Enabled:   gocloak.BoolP(true),
		Credentials: &[]gocloak.CredentialRepresentation{{
			Type:      gocloak.StringP("password"),
			Value:     gocloak.StringP(acc.Password),
			Temporary: gocloak.BoolP(false),
		}},
	})
	if err != nil {
		return "", httperr.ErrBusiness(httperr.CodeIdentityProvider)
	}
	return id, nil
}

func (p *KeycloakProvider) UpdateAccount(ctx context.Context, externalID string, acc Account) error {
	token, err := p.adminToken(ctx)
	if err != nil {
		return err
	}

	user := gocloak.User{ID: gocloak.StringP(externalID)}
	if acc.Username != "" {
		user.Username = gocloak.StringP(acc.Username)
	}
	if acc.Email != "" {
		user.Email = gocloak.StringP(acc.Email)
	}
	if acc.FirstName != "" {
		user.FirstName = gocloak.StringP(acc.FirstName)
	}
	if acc.LastName != "" {
		user.LastName = gocloak.StringP(acc.LastName)
	}

	if err := p.client.UpdateUser(ctx, token, p.realm, user); err != nil {
		return httperr.ErrBusiness(httperr.CodeIdentityProvider)
	}
	return nil
}

func (p *KeycloakProvider) DeleteAccount(ctx context.Context, externalID string) error {
	token, err := p.adminToken(ctx)
	if err != nil {
		return err
	}
	if err := p.client.DeleteUser(ctx, token, p.realm, externalID); err != nil {
		return httperr.ErrBusiness(httperr.CodeIdentityProvider)
	}
	return nil
}

func (p *KeycloakProvider) SetPassword(ctx context.Context, externalID, password string) error {
	token, err := p.adminToken(ctx)
	if err != nil {
		return err
	}
	if err := p.client.SetPassword(ctx, token, externalID, p.realm, password, false); err != nil {
		return httperr.ErrBusiness(httperr.CodeIdentityProvider)
	}
	return nil
}

var _ Provider = (*KeycloakProvider)(nil)
