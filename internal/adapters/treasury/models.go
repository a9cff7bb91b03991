package treasury

// ratesResponse is the envelope returned by the rates_of_exchange endpoint.
// Only the fields requested through the "fields" parameter are populated.
type ratesResponse struct {
	Data []rateRecord `json:"data"`
	Meta struct {
		Count      int `json:"count"`
		TotalCount int `json:"total-count"`
	} `json:"meta"`
}

// rateRecord is a single published rate. Numbers and dates arrive as strings.
type rateRecord struct {
	Country             string `json:"country"`
	Currency            string `json:"currency"`
	CountryCurrencyDesc string `json:"country_currency_desc"`
	ExchangeRate        string `json:"exchange_rate"`
	RecordDate          string `json:"record_date"`
	EffectiveDate       string `json:"effective_date"`
}
