package dto

// CurrencyListResponse defines the list of currencies available for conversion.
type CurrencyListResponse struct {
	Currencies []string `json:"currencies"`
	Count      int      `json:"count"`
}

// ToCurrencyListResponse wraps a currency list.
func ToCurrencyListResponse(currencies []string) CurrencyListResponse {
	if currencies == nil {
		currencies = []string{}
	}
	return CurrencyListResponse{Currencies: currencies, Count: len(currencies)}
}
