package captable

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The cap-table file is JSONL: one entry per line, discriminated by the
// "entry" field. The company entry comes first and sets the currency;
// every monetary value after it is a plain decimal in that currency.

// EntryType is a typed string for identifying cap-table file entries.
type EntryType string

const (
	EntryCompany     EntryType = "company"
	EntryShareholder EntryType = "shareholder"
	EntryRound       EntryType = "round"
	EntryPreference  EntryType = "preference"
)

func (s Shareholder) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("entry", EntryShareholder)
	w.Append("id", s.ID)
	w.Append("name", s.Name)
	w.Append("role", s.Role.String())
	return w.MarshalJSON()
}

func (i Investment) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("shareholder", i.Shareholder)
	w.Optional("amount", i.Amount.value)
	w.Append("shares", i.Shares)
	return w.MarshalJSON()
}

func (r Round) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("entry", EntryRound)
	w.Append("id", r.ID)
	w.Append("name", r.Name)
	w.Optional("class", r.Class)
	if r.Pool {
		w.Append("pool", true)
	}
	w.Optional("strike", r.Strike.value)
	w.Optional("preMoney", r.PreMoney.value)
	w.Optional("pricePerShare", r.PricePerShare.value)
	w.Append("investments", r.Investments)
	return w.MarshalJSON()
}

func (p LiquidationPreference) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("entry", EntryPreference)
	w.Append("round", p.Round)
	w.Append("multiple", p.Multiple)
	w.Append("type", p.Type.String())
	w.Append("seniority", p.Seniority)
	return w.MarshalJSON()
}

// EncodeCapTable writes the cap table and its preference list in the
// canonical order: company, shareholders, rounds, then preferences by
// ascending seniority.
func EncodeCapTable(w io.Writer, ct *CapTable, prefs []LiquidationPreference) error {
	var company jsonObjectWriter
	company.Append("entry", EntryCompany)
	company.Append("name", ct.Company)
	company.Append("currency", ct.Currency)
	if err := encodeLine(w, &company); err != nil {
		return err
	}

	for _, s := range ct.Shareholders {
		if err := encodeLine(w, s); err != nil {
			return err
		}
	}
	for _, r := range ct.Rounds {
		if err := encodeLine(w, r); err != nil {
			return err
		}
	}

	sorted := slices.Clone(prefs)
	slices.SortStableFunc(sorted, func(a, b LiquidationPreference) int { return a.Seniority - b.Seniority })
	for _, p := range sorted {
		if err := encodeLine(w, p); err != nil {
			return err
		}
	}
	return nil
}

func encodeLine(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return err
	}
	return nil
}

// DecodeCapTable reads a cap-table file. Unknown entry types are an
// error: the file is ours, not a lenient import format.
func DecodeCapTable(r io.Reader) (*CapTable, []LiquidationPreference, error) {
	ct := &CapTable{Currency: "USD"}
	var prefs []LiquidationPreference

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Entry EntryType `json:"entry"`
		}
		if err := json.Unmarshal(line, &identifier); err != nil {
			return nil, nil, fmt.Errorf("could not identify entry in line %q: %w", string(line), err)
		}

		switch identifier.Entry {
		case EntryCompany:
			var temp struct {
				Name     string `json:"name"`
				Currency string `json:"currency"`
			}
			if err := json.Unmarshal(line, &temp); err != nil {
				return nil, nil, err
			}
			ct.Company = temp.Name
			if temp.Currency != "" {
				ct.Currency = temp.Currency
			}

		case EntryShareholder:
			var temp struct {
				ID   string `json:"id"`
				Name string `json:"name"`
				Role string `json:"role"`
			}
			if err := json.Unmarshal(line, &temp); err != nil {
				return nil, nil, err
			}
			role, err := ParseRole(temp.Role)
			if err != nil {
				return nil, nil, fmt.Errorf("shareholder %q: %w", temp.ID, err)
			}
			ct.Shareholders = append(ct.Shareholders, Shareholder{ID: temp.ID, Name: temp.Name, Role: role})

		case EntryRound:
			var temp struct {
				ID            string          `json:"id"`
				Name          string          `json:"name"`
				Class         string          `json:"class"`
				Pool          bool            `json:"pool"`
				Strike        decimal.Decimal `json:"strike"`
				PreMoney      decimal.Decimal `json:"preMoney"`
				PricePerShare decimal.Decimal `json:"pricePerShare"`
				Investments   []struct {
					Shareholder string          `json:"shareholder"`
					Amount      decimal.Decimal `json:"amount"`
					Shares      Quantity        `json:"shares"`
				} `json:"investments"`
			}
			if err := json.Unmarshal(line, &temp); err != nil {
				return nil, nil, err
			}
			round := Round{
				ID:            temp.ID,
				Name:          temp.Name,
				Class:         temp.Class,
				Pool:          temp.Pool,
				Strike:        M(temp.Strike, ct.Currency).exact(),
				PreMoney:      M(temp.PreMoney, ct.Currency).exact(),
				PricePerShare: M(temp.PricePerShare, ct.Currency).exact(),
			}
			for _, inv := range temp.Investments {
				round.Investments = append(round.Investments, Investment{
					Shareholder: inv.Shareholder,
					Amount:      M(inv.Amount, ct.Currency),
					Shares:      inv.Shares,
				})
			}
			ct.Rounds = append(ct.Rounds, round)

		case EntryPreference:
			var temp struct {
				Round     string   `json:"round"`
				Multiple  Quantity `json:"multiple"`
				Type      string   `json:"type"`
				Seniority int      `json:"seniority"`
			}
			if err := json.Unmarshal(line, &temp); err != nil {
				return nil, nil, err
			}
			typ, err := ParsePreferenceType(temp.Type)
			if err != nil {
				return nil, nil, fmt.Errorf("preference on round %q: %w", temp.Round, err)
			}
			prefs = append(prefs, LiquidationPreference{
				Round:     temp.Round,
				Multiple:  temp.Multiple,
				Type:      typ,
				Seniority: temp.Seniority,
			})

		default:
			return nil, nil, fmt.Errorf("unknown entry type %q in line %q", identifier.Entry, string(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return ct, prefs, nil
}
