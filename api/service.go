package api

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/jrsteele09/go-member-client/apiclient"
	"github.com/jrsteele09/go-member-client/users"
)

// Params are sent as the query string of a call.
type Params = url.Values

// Caller performs one GET through the request pipeline.
type Caller interface {
	Get(ctx context.Context, route string, params url.Values) (json.RawMessage, error)
}

var _ Caller = (*apiclient.Client)(nil)

// Service wraps the member API routes with typed results.
type Service struct {
	caller Caller
}

func NewService(caller Caller) *Service {
	return &Service{caller: caller}
}

// Call issues any route and returns its raw data.
func (s *Service) Call(ctx context.Context, route string, params Params) (json.RawMessage, error) {
	return s.caller.Get(ctx, route, params)
}

func (s *Service) SysConfig(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.caller.Get(ctx, RouteSysConfig, params)
}

func (s *Service) AuthCaptcha(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.caller.Get(ctx, RouteAuthCaptcha, params)
}

func (s *Service) VipLevels(ctx context.Context) ([]VipLevel, error) {
	return apiclient.Decode[[]VipLevel](s.caller.Get(ctx, RouteVipLevel, nil))
}

func (s *Service) Notices(ctx context.Context, params Params) ([]Notice, error) {
	return apiclient.Decode[[]Notice](s.caller.Get(ctx, RouteNotices, params))
}

func (s *Service) Banners(ctx context.Context) ([]Banner, error) {
	return apiclient.Decode[[]Banner](s.caller.Get(ctx, RouteBannerList, nil))
}

func (s *Service) GameTypes(ctx context.Context) ([]GameType, error) {
	return apiclient.Decode[[]GameType](s.caller.Get(ctx, RouteGameTypeList, nil))
}

func (s *Service) Games(ctx context.Context, params Params) (Page[Game], error) {
	return apiclient.Decode[Page[Game]](s.caller.Get(ctx, RouteGameList, params))
}

func (s *Service) HotGames(ctx context.Context) ([]Game, error) {
	return apiclient.Decode[[]Game](s.caller.Get(ctx, RouteGameHotList, nil))
}

// GameURL returns the launch URL for a game. The API answers either with a
// bare string or an object holding a url field.
func (s *Service) GameURL(ctx context.Context, params Params) (string, error) {
	data, err := s.caller.Get(ctx, RouteGameURL, params)
	if err != nil || data == nil {
		return "", err
	}

	var direct string
	if json.Unmarshal(data, &direct) == nil {
		return direct, nil
	}
	wrapped, err := apiclient.Decode[struct {
		URL string `json:"url"`
	}](data, nil)
	return wrapped.URL, err
}

// Login authenticates with a member name and password. The caller owns
// storing the returned token.
func (s *Service) Login(ctx context.Context, name, password string) (LoginResult, error) {
	return apiclient.Decode[LoginResult](s.caller.Get(ctx, RouteLogin, Params{
		"name":     {name},
		"password": {password},
	}))
}

func (s *Service) Register(ctx context.Context, params Params) (LoginResult, error) {
	return apiclient.Decode[LoginResult](s.caller.Get(ctx, RouteRegister, params))
}

func (s *Service) Logout(ctx context.Context) error {
	_, err := s.caller.Get(ctx, RouteLogout, nil)
	return err
}

// UserInfo fetches the signed-in member. A nil profile means the server
// answered successfully without data.
func (s *Service) UserInfo(ctx context.Context) (*users.Profile, error) {
	return apiclient.Decode[*users.Profile](s.caller.Get(ctx, RouteUserInfo, nil))
}

func (s *Service) UpdatePassword(ctx context.Context, params Params) error {
	_, err := s.caller.Get(ctx, RouteUpdatePassword, params)
	return err
}

func (s *Service) MoneyRecords(ctx context.Context, params Params) (Page[MoneyLog], error) {
	return apiclient.Decode[Page[MoneyLog]](s.caller.Get(ctx, RouteMoneyRecord, params))
}

func (s *Service) TopUpInfo(ctx context.Context) ([]PaymentItem, error) {
	return apiclient.Decode[[]PaymentItem](s.caller.Get(ctx, RouteTopUpInfo, nil))
}

func (s *Service) Withdraw(ctx context.Context, params Params) (json.RawMessage, error) {
	return s.caller.Get(ctx, RouteWithdraw, params)
}

func (s *Service) TeamInfo(ctx context.Context) (json.RawMessage, error) {
	return s.caller.Get(ctx, RouteTeamInfo, nil)
}
