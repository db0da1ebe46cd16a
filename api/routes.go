package api

// Route path constants for the member API. Every route is called with GET.
const (
	// Config Routes
	RouteSysConfig   = "/config/sys_config"
	RouteAuthCaptcha = "/config/auth_captcha"

	// Info Routes
	RouteVipLevel         = "/info/vip_level"
	RouteNotices          = "/info/notices"
	RouteActivityTypeList = "/info/activity_type_list"
	RouteActivityList     = "/info/activity_list"
	RouteActivityDetail   = "/info/activity_detail"
	RouteArticleTypeList  = "/info/article_type_list"
	RouteArticleList      = "/info/article_list"
	RouteArticleDetail    = "/info/article_detail"

	// Game Routes
	RouteGameTypeList    = "/game/game_type_list"
	RouteGameList        = "/game/game_list"
	RouteGameHotList     = "/game/game_hot_list"
	RouteSupplierList    = "/game/supplier_list"
	RouteBannerList      = "/game/banner_list"
	RouteGameURL         = "/game/game_url"
	RouteGameConfig      = "/game/game_config"
	RouteGetConfigByName = "/game/get_config_by_name"

	// User Routes
	RouteLogin                  = "/user/login"
	RouteTelegramLogin          = "/user/tglogin"
	RouteRegister               = "/user/register"
	RouteLogout                 = "/user/out"
	RouteUpdatePassword         = "/user/update_pwd"
	RouteUpdateWithdrawPassword = "/user/update_withdraw_pwd"
	RouteUpdateUserInfo         = "/user/update_user_info"
	RouteUserInfo               = "/user/user_info"
	RouteUserGameRecentList     = "/user/user_game_recent_list"
	RouteUserGameLoveList       = "/user/user_game_love_list"
	RouteUserGameRecentAdd      = "/user/user_game_recent_add"
	RouteUserGameLoveAdd        = "/user/user_game_love_add"
	RouteUserGameRecentDel      = "/user/user_game_recent_del"
	RouteUserGameLoveDel        = "/user/user_game_love_del"

	// Money Routes
	RouteTopUpInfo         = "/money/top_up_info"
	RouteTopUp             = "/money/top_up"
	RouteWithdraw          = "/money/withdraw"
	RouteTopUpRecord       = "/money/top_up_record"
	RouteMoneyRecord       = "/money/money_record"
	RouteWithdrawRecord    = "/money/withdraw_record"
	RouteAccountAdd        = "/money/account_add"
	RouteAccountEdit       = "/money/account_edit"
	RouteAccountDetail     = "/money/account_detail"
	RouteAccountSetDefault = "/money/account_set_default"
	RouteAccountList       = "/money/account_list"
	RouteGameRecord        = "/money/game_record"
	RouteRebateRecord      = "/money/fanshui_record"
	RouteCommissionRecord  = "/money/fanyong_record"
	RouteAgentRecord       = "/money/daili_record"
	RouteAgentEdit         = "/money/daili_edit"
	RouteAgentAddMoney     = "/money/daili_add_memeber_money"

	// Team Routes
	RouteTeamInfo = "/team/info"
)
