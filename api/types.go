package api

// Page is the paginated list shape used by record and list endpoints.
type Page[T any] struct {
	CurrentPage int `json:"current_page,omitempty"`
	Total       int `json:"total,omitempty"`
	PerPage     int `json:"per_page,omitempty"`
	LastPage    int `json:"last_page,omitempty"`
	Data        []T `json:"data"`
}

type LoginResult struct {
	Token string `json:"token"`
}

type VipLevel struct {
	ID           int    `json:"id"`
	Level        int    `json:"level"`
	LevelName    string `json:"level_name"`
	DepositMoney string `json:"deposit_money"`
	BetMoney     string `json:"bet_money"`
	DayBonus     string `json:"day_bonus,omitempty"`
	WeekBonus    string `json:"week_bonus,omitempty"`
	MonthBonus   string `json:"month_bonus,omitempty"`
	YearBonus    string `json:"year_bonus,omitempty"`
	LevelBonus   string `json:"level_bonus,omitempty"`
}

type Notice struct {
	ID        int    `json:"id,omitempty"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	URL       string `json:"url,omitempty"`
	Type      string `json:"type,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type Banner struct {
	ID          int    `json:"id,omitempty"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	JumpLink    string `json:"jump_link,omitempty"`
	IsNewWindow int    `json:"is_new_window,omitempty"`
	Weight      int    `json:"weight,omitempty"`
}

type GameType struct {
	Key   int    `json:"key"`
	Value string `json:"value"`
}

type Game struct {
	ID           int    `json:"id"`
	APIName      string `json:"api_name"`
	Name         string `json:"name"`
	EnName       string `json:"en_name,omitempty"`
	GameType     int    `json:"game_type"`
	GameCode     string `json:"game_code"`
	ImgURL       string `json:"img_url"`
	FullImageURL string `json:"full_image_url,omitempty"`
	Platform     string `json:"platform,omitempty"`
	IsOpen       int    `json:"is_open"`
	Weight       int    `json:"weight"`
	Tags         string `json:"tags,omitempty"`
}

type MoneyLog struct {
	ID              int    `json:"id"`
	MemberID        int    `json:"member_id"`
	Money           string `json:"money"`
	MoneyBefore     string `json:"money_before"`
	MoneyAfter      string `json:"money_after"`
	MoneyType       string `json:"money_type"`
	OperateType     int    `json:"operate_type"`
	OperateTypeText string `json:"operate_type_text,omitempty"`
	MoneyTypeText   string `json:"money_type_text,omitempty"`
	Description     string `json:"description,omitempty"`
	Remark          string `json:"remark,omitempty"`
	CreatedAt       string `json:"created_at"`
}

// PaymentItem is one top-up channel
type PaymentItem struct {
	ID       int     `json:"id"`
	Type     string  `json:"type"`
	TypeText string  `json:"type_text,omitempty"`
	Account  string  `json:"account"`
	Name     string  `json:"name"`
	Desc     string  `json:"desc,omitempty"`
	QRCode   string  `json:"qrcode,omitempty"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Rate     string  `json:"rate,omitempty"`
	IsOpen   int     `json:"is_open"`
}
