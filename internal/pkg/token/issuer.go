package token

import (
	"net/http"
	"time"

	"github.com/newsroom/publishing-api/internal/core/domain"
)

const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"
)

// Settings is the signing secret and lifetime of one token kind.
type Settings struct {
	Secret string
	TTL    time.Duration
}

// Issued is a freshly signed token and the cookie carrying it.
type Issued struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
	Cookie    *http.Cookie
}

// CookieString renders the Set-Cookie value, e.g.
// "refreshToken=<t>; Path=/; Max-Age=604800; HttpOnly".
func (i Issued) CookieString() string {
	return i.Cookie.String()
}

// Issuer binds a Codec to independent access and refresh settings.
type Issuer struct {
	codec   *Codec
	access  Settings
	refresh Settings
}

func NewIssuer(codec *Codec, access, refresh Settings) *Issuer {
	return &Issuer{codec: codec, access: access, refresh: refresh}
}

func (i *Issuer) IssueAccess(claim domain.Claim) (Issued, error) {
	return i.issue(claim, AccessCookie, i.access)
}

func (i *Issuer) IssueRefresh(claim domain.Claim) (Issued, error) {
	return i.issue(claim, RefreshCookie, i.refresh)
}

func (i *Issuer) VerifyAccess(raw string) (*Parsed, error) {
	return i.codec.Verify(raw, i.access.Secret)
}

func (i *Issuer) VerifyRefresh(raw string) (*Parsed, error) {
	return i.codec.Verify(raw, i.refresh.Secret)
}

// ClearRefreshCookie returns a cookie that makes the client drop its refresh
// token.
func ClearRefreshCookie() *http.Cookie {
	return &http.Cookie{Name: RefreshCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true}
}

func (i *Issuer) issue(claim domain.Claim, name string, s Settings) (Issued, error) {
	raw, reg, err := i.codec.sign(claim, s.Secret, s.TTL)
	if err != nil {
		return Issued{}, err
	}
	return Issued{
		Token:     raw,
		TokenID:   reg.ID,
		ExpiresAt: reg.ExpiresAt.Time,
		Cookie: &http.Cookie{
			Name:     name,
			Value:    raw,
			Path:     "/",
			MaxAge:   int(s.TTL / time.Second),
			HttpOnly: true,
		},
	}, nil
}
