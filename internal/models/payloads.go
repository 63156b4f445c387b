package models

// Per-type widget payloads. Each mirrors the shape produced by the backend
// formatter for that widget type. Every payload carries a Mock flag marking
// synthetic data and the generation timestamp (ISO-8601 string, as sent).

// WeatherData is the payload of a "weather" widget.
type WeatherData struct {
	Location  WeatherLocation `json:"location"`
	Current   WeatherCurrent  `json:"current"`
	Details   WeatherDetails  `json:"details"`
	Timestamp string          `json:"timestamp"`
	Mock      bool            `json:"mock"`
}

type WeatherLocation struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

type WeatherCurrent struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

type WeatherDetails struct {
	Humidity   float64 `json:"humidity"`
	Pressure   float64 `json:"pressure"`
	WindSpeed  float64 `json:"wind_speed"`
	Visibility float64 `json:"visibility"`
}

// StockData is the payload of a "stock" widget.
type StockData struct {
	Symbol      string      `json:"symbol"`
	CompanyName string      `json:"company_name"`
	Price       StockPrice  `json:"price"`
	Change      StockChange `json:"change"`
	Range       StockRange  `json:"range"`
	Volume      int64       `json:"volume"`
	Timestamp   string      `json:"timestamp"`
	Mock        bool        `json:"mock"`
}

type StockPrice struct {
	Current       float64 `json:"current"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previous_close"`
}

type StockChange struct {
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	IsPositive bool    `json:"is_positive"`
	Formatted  string  `json:"formatted"`
}

type StockRange struct {
	High float64 `json:"high"`
	Low  float64 `json:"low"`
}

// NewsData is the payload of a "news" widget.
type NewsData struct {
	Query        string        `json:"query"`
	TotalResults int           `json:"total_results"`
	Articles     []NewsArticle `json:"articles"`
	Timestamp    string        `json:"timestamp"`
	Mock         bool          `json:"mock"`
}

type NewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
	ImageURL    string `json:"image_url,omitempty"`
	ReadTime    string `json:"read_time,omitempty"`
	Summary     string `json:"summary,omitempty"`
}

// ClockData is the payload of a "clock" widget.
type ClockData struct {
	Timezone  string    `json:"timezone"`
	Location  string    `json:"location"`
	Time      ClockTime `json:"time"`
	Date      ClockDate `json:"date"`
	UTCOffset string    `json:"utc_offset"`
	Timestamp string    `json:"timestamp"`
	Mock      bool      `json:"mock"`
}

type ClockTime struct {
	Current      string `json:"current"`
	Formatted12H string `json:"formatted_12h"`
	Formatted24H string `json:"formatted_24h"`
	Hour         int    `json:"hour"`
	Hour12       int    `json:"hour_12"`
	Minute       int    `json:"minute"`
	Second       int    `json:"second"`
	AMPM         string `json:"am_pm"`
}

type ClockDate struct {
	Full      string `json:"full"`
	DayOfWeek string `json:"day_of_week"`
	Month     string `json:"month"`
	Day       string `json:"day"`
	Year      string `json:"year"`
}

// TopStocksData is the payload of a "top_stocks" widget.
type TopStocksData struct {
	Stocks      []TopStockEntry `json:"stocks"`
	TotalCount  int             `json:"total_count"`
	LastUpdated string          `json:"last_updated"`
	Market      string          `json:"market"`
	SortBy      string          `json:"sort_by"`
}

type TopStockEntry struct {
	Symbol      string      `json:"symbol"`
	CompanyName string      `json:"company_name"`
	Price       StockPrice  `json:"price"`
	Change      StockChange `json:"change"`
	Volume      int64       `json:"volume"`
	MarketCap   float64     `json:"market_cap"`
	Rank        int         `json:"rank"`
	Timestamp   string      `json:"timestamp"`
	Mock        bool        `json:"mock"`
}

// BankingAccountsData is the payload of a "banking_accounts" widget.
type BankingAccountsData struct {
	Accounts  []BankAccount       `json:"accounts"`
	Summary   BankAccountsSummary `json:"summary"`
	Timestamp string              `json:"timestamp"`
	Mock      bool                `json:"mock"`
}

type BankAccount struct {
	ID               string  `json:"id"`
	AccountNumber    string  `json:"account_number"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	Balance          float64 `json:"balance"`
	BalanceFormatted string  `json:"balance_formatted"`
	Currency         string  `json:"currency"`
	Status           string  `json:"status"`
	LastActivity     string  `json:"last_activity"`
	IsPositive       bool    `json:"is_positive"`
}

type BankAccountsSummary struct {
	TotalAccounts         int      `json:"total_accounts"`
	ActiveAccounts        int      `json:"active_accounts"`
	TotalBalance          float64  `json:"total_balance"`
	TotalBalanceFormatted string   `json:"total_balance_formatted"`
	AccountTypes          []string `json:"account_types"`
}

// BankingTransactionsData is the payload of a "banking_transactions" widget.
type BankingTransactionsData struct {
	AccountID    string              `json:"account_id"`
	Transactions []BankTransaction   `json:"transactions"`
	Summary      TransactionsSummary `json:"summary"`
	Timestamp    string              `json:"timestamp"`
	Mock         bool                `json:"mock"`
}

type BankTransaction struct {
	ID              string  `json:"id"`
	Type            string  `json:"type"`
	Amount          float64 `json:"amount"`
	AmountFormatted string  `json:"amount_formatted"`
	IsDebit         bool    `json:"is_debit"`
	Description     string  `json:"description"`
	Merchant        string  `json:"merchant"`
	Date            string  `json:"date"`
	Status          string  `json:"status"`
	Category        string  `json:"category"`
	Reference       string  `json:"reference"`
}

type TransactionsSummary struct {
	TotalTransactions int     `json:"total_transactions"`
	AccountBalance    float64 `json:"account_balance"`
	TotalDebits       float64 `json:"total_debits"`
	TotalCredits      float64 `json:"total_credits"`
}

// BankingPaymentsData is the payload of a "banking_payments" widget.
type BankingPaymentsData struct {
	PaymentType    string          `json:"payment_type"`
	PaymentMethods []PaymentMethod `json:"payment_methods"`
	Summary        PaymentsSummary `json:"summary"`
	Timestamp      string          `json:"timestamp"`
	Mock           bool            `json:"mock"`
}

type PaymentMethod struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	URL            string  `json:"url"`
	Fee            float64 `json:"fee"`
	FeeFormatted   string  `json:"fee_formatted"`
	ProcessingTime string  `json:"processing_time"`
	IsFree         bool    `json:"is_free"`
	IsInstant      bool    `json:"is_instant"`
	Recommended    bool    `json:"recommended"`
}

type PaymentsSummary struct {
	TotalMethods   int      `json:"total_methods"`
	FreeMethods    int      `json:"free_methods"`
	InstantMethods int      `json:"instant_methods"`
	AvailableTypes []string `json:"available_types"`
}

// BankingOffersData is the payload of a "banking_offers" widget.
type BankingOffersData struct {
	Offers    []BankOffer   `json:"offers"`
	Summary   OffersSummary `json:"summary"`
	Timestamp string        `json:"timestamp"`
	Mock      bool          `json:"mock"`
}

type BankOffer struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Type          string `json:"type"`
	Value         string `json:"value"`
	ValidUntil    string `json:"valid_until"`
	Requirements  string `json:"requirements"`
	Status        string `json:"status"`
	IsExpired     bool   `json:"is_expired"`
	DaysRemaining int    `json:"days_remaining"`
}

type OffersSummary struct {
	TotalOffers   int      `json:"total_offers"`
	ActiveOffers  int      `json:"active_offers"`
	ExpiredOffers int      `json:"expired_offers"`
	Categories    []string `json:"categories"`
}

// BankingBankerData is the payload of a "banking_banker" widget.
type BankingBankerData struct {
	Bankers   []BankerContact `json:"bankers"`
	Summary   BankersSummary  `json:"summary"`
	Timestamp string          `json:"timestamp"`
	Mock      bool            `json:"mock"`
}

type BankerContact struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Title           string   `json:"title"`
	Department      string   `json:"department"`
	Specialization  string   `json:"specialization"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Availability    string   `json:"availability"`
	Experience      string   `json:"experience"`
	ExperienceYears int      `json:"experience_years"`
	Languages       []string `json:"languages"`
	IsAvailable     bool     `json:"is_available"`
}

type BankersSummary struct {
	TotalBankers     int      `json:"total_bankers"`
	AvailableBankers int      `json:"available_bankers"`
	Departments      []string `json:"departments"`
	Specializations  []string `json:"specializations"`
}
