package mod

import "fmt"

// Record is the metadata known for a single BIN.
type Record struct {
	Bin         string `json:"bin"`
	Scheme      string `json:"scheme"`       //mastercard, visa, unionpay, etc
	Type        string `json:"type"`         //debit or credit
	Brand       string `json:"brand"`        //
	Bank        string `json:"bank"`         //issuing bank, english name
	Country     string `json:"country"`      //ISO alpha-2
	CountryCode string `json:"country_code"` //
	Level       string `json:"level"`        //classic, gold, platinum, etc
	CountryFlag string `json:"country_flag"` //
	Prepaid     bool   `json:"prepaid"`
	IsValid     bool   `json:"is_valid"`
}

// Summary renders the record as one "Field: value" line per field.
func (r Record) Summary() string {
	return fmt.Sprintf(
		"BIN: %s\nScheme: %s\nType: %s\nBrand: %s\nBank: %s\nCountry: %s (%s)\nLevel: %s\nFlag: %s\nPrepaid: %s\nValid: %s",
		r.Bin,
		r.Scheme,
		r.Type,
		r.Brand,
		r.Bank,
		r.Country,
		r.CountryCode,
		r.Level,
		r.CountryFlag,
		yesNo(r.Prepaid),
		yesNo(r.IsValid))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
