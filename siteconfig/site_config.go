package siteconfig

import (
	"encoding/json"
	"strconv"

	"github.com/jrsteele09/go-member-client/internal/errors"
)

// Keys of the fields modelled by SiteConfig
const (
	KeySiteName           = "site_name"
	KeySiteWapLogo        = "site_wap_logo"
	KeySiteLogo           = "site_logo"
	KeySiteTitle          = "site_title"
	KeySiteKeyword        = "site_keyword"
	KeySiteDescription    = "site_description"
	KeyCustomerServiceURL = "customer_service_url"
	KeyGroupPrefix        = "group_prefix"
	KeyGroupName          = "group_name"
	KeyWebURL             = "web_url"
	KeyAdminURL           = "admin_url"
	KeyAgentURL           = "agent_url"
	KeyLobbyURL           = "lobby_url"
	KeyPromotionURL       = "promotion_url"
	KeyPrimaryColor       = "primary_color"
)

// SiteConfig is the per-tenant configuration served by the system config
// endpoint. Fields not modelled here stay available in Extra.
type SiteConfig struct {
	SiteName           string
	SiteWapLogo        string
	SiteLogo           string
	SiteTitle          string
	SiteKeyword        string
	SiteDescription    string
	CustomerServiceURL string
	GroupPrefix        string
	GroupName          string
	WebURL             string
	AdminURL           string
	AgentURL           string
	LobbyURL           string
	PromotionURL       string
	PrimaryColor       string

	Extra map[string]json.RawMessage

	raw map[string]json.RawMessage
}

// Parse decodes a config object. Core fields given as numbers are accepted
// and rendered as strings.
func Parse(data json.RawMessage) (*SiteConfig, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(errors.ErrNoConfigData, "decoding configuration: %v", err)
	}
	if raw == nil {
		return nil, errors.ErrNoConfigData
	}

	c := &SiteConfig{raw: raw, Extra: map[string]json.RawMessage{}}
	core := map[string]*string{
		KeySiteName:           &c.SiteName,
		KeySiteWapLogo:        &c.SiteWapLogo,
		KeySiteLogo:           &c.SiteLogo,
		KeySiteTitle:          &c.SiteTitle,
		KeySiteKeyword:        &c.SiteKeyword,
		KeySiteDescription:    &c.SiteDescription,
		KeyCustomerServiceURL: &c.CustomerServiceURL,
		KeyGroupPrefix:        &c.GroupPrefix,
		KeyGroupName:          &c.GroupName,
		KeyWebURL:             &c.WebURL,
		KeyAdminURL:           &c.AdminURL,
		KeyAgentURL:           &c.AgentURL,
		KeyLobbyURL:           &c.LobbyURL,
		KeyPromotionURL:       &c.PromotionURL,
		KeyPrimaryColor:       &c.PrimaryColor,
	}
	for key, value := range raw {
		if dst, ok := core[key]; ok {
			*dst = looseString(value)
			continue
		}
		c.Extra[key] = value
	}
	return c, nil
}

func looseString(v json.RawMessage) string {
	var s string
	if json.Unmarshal(v, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(v, &n) == nil {
		return n.String()
	}
	var b bool
	if json.Unmarshal(v, &b) == nil {
		return strconv.FormatBool(b)
	}
	return ""
}

// IsEmpty reports whether the configuration holds no fields at all.
func (c *SiteConfig) IsEmpty() bool {
	return c == nil || len(c.raw) == 0
}

// Raw returns the undecoded value of key.
func (c *SiteConfig) Raw(key string) (json.RawMessage, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.raw[key]
	return v, ok
}

// Len returns the number of fields
func (c *SiteConfig) Len() int {
	if c == nil {
		return 0
	}
	return len(c.raw)
}

// Lookup decodes key from c into T, falling back to def when the
// configuration is empty, the key is absent or null, or the value does not
// decode as T.
func Lookup[T any](c *SiteConfig, key string, def T) T {
	raw, ok := c.Raw(key)
	if !ok || string(raw) == "null" {
		return def
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return def
	}
	return out
}
