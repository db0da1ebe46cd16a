package siteconfig_test

import (
	"encoding/json"
	"testing"

	"github.com/jrsteele09/go-member-client/internal/errors"
	"github.com/jrsteele09/go-member-client/siteconfig"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := siteconfig.Parse(json.RawMessage(`{
		"site_name": "Foo",
		"group_prefix": "T1",
		"primary_color": "#112233",
		"customer_service_url": "https://cs.example.com",
		"site_wap_logo": 42,
		"register_open": true,
		"limits": {"min": 10}
	}`))
	require.NoError(t, err)
	require.Equal(t, "Foo", cfg.SiteName)
	require.Equal(t, "T1", cfg.GroupPrefix)
	require.Equal(t, "#112233", cfg.PrimaryColor)
	require.Equal(t, "https://cs.example.com", cfg.CustomerServiceURL)
	require.Equal(t, "42", cfg.SiteWapLogo)
	require.Contains(t, cfg.Extra, "register_open")
	require.NotContains(t, cfg.Extra, "site_name")
	require.Equal(t, 7, cfg.Len())
	require.False(t, cfg.IsEmpty())
}

func TestParseRejectsNonObjects(t *testing.T) {
	for _, body := range []string{`null`, `[1,2]`, `"x"`, `{`} {
		_, err := siteconfig.Parse(json.RawMessage(body))
		require.True(t, errors.Is(err, errors.ErrNoConfigData), body)
	}
}

func TestLookup(t *testing.T) {
	cfg, err := siteconfig.Parse(json.RawMessage(`{"register_open": true, "limits": {"min": 10}, "nothing": null, "name": "x"}`))
	require.NoError(t, err)

	type limits struct {
		Min int `json:"min"`
	}
	require.True(t, siteconfig.Lookup(cfg, "register_open", false))
	require.Equal(t, limits{Min: 10}, siteconfig.Lookup(cfg, "limits", limits{}))
	require.Equal(t, "def", siteconfig.Lookup(cfg, "nothing", "def"))
	require.Equal(t, 5, siteconfig.Lookup(cfg, "name", 5))
	require.Equal(t, 5, siteconfig.Lookup(cfg, "absent", 5))
	require.Equal(t, "def", siteconfig.Lookup[string](nil, "name", "def"))
}

func TestEmptyConfig(t *testing.T) {
	cfg, err := siteconfig.Parse(json.RawMessage(`{}`))
	require.NoError(t, err)
	require.True(t, cfg.IsEmpty())

	var nilCfg *siteconfig.SiteConfig
	require.True(t, nilCfg.IsEmpty())
	require.Zero(t, nilCfg.Len())
}
