package treasury

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const rateFields = "country,currency,country_currency_desc,exchange_rate,record_date,effective_date"

// queryShape is one way of asking the API for a currency's rate. Shapes are
// tried in order until one returns a record.
type queryShape struct {
	name          string
	currencyField string
	dateField     string
}

var rateQueryShapes = []queryShape{
	{name: "primary", currencyField: "country_currency_desc", dateField: "record_date"},
	{name: "fallback", currencyField: "currency", dateField: "effective_date"},
}

// filter matches currency exactly and bounds dateField to [from, to].
func (s queryShape) filter(currency string, from, to time.Time) string {
	return strings.Join([]string{
		fmt.Sprintf("%s:eq:%s", s.currencyField, currency),
		fmt.Sprintf("%s:gte:%s", s.dateField, from.Format(time.DateOnly)),
		fmt.Sprintf("%s:lte:%s", s.dateField, to.Format(time.DateOnly)),
	}, ",")
}

// params asks for the single most recent record in the window.
func (s queryShape) params(currency string, from, to time.Time) url.Values {
	v := url.Values{}
	v.Set("fields", rateFields)
	v.Set("filter", s.filter(currency, from, to))
	v.Set("sort", "-"+s.dateField)
	v.Set("page[size]", "1")
	return v
}

func (s queryShape) recordDate(r rateRecord) string {
	if s.dateField == "effective_date" {
		return r.EffectiveDate
	}
	return r.RecordDate
}

func (s queryShape) recordCurrency(r rateRecord) string {
	if s.currencyField == "currency" {
		return r.Currency
	}
	return r.CountryCurrencyDesc
}

func currencyListParams(pageSize int) url.Values {
	v := url.Values{}
	v.Set("fields", "currency,country_currency_desc")
	v.Set("sort", "-record_date")
	v.Set("page[size]", strconv.Itoa(pageSize))
	return v
}
