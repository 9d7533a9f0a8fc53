package sheet

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dualibesoft/cherry-ledger/pkg/ledger"
)

// Layout describes the sheet geometry and labels. The defaults match
// the format the app has always produced: debit block in columns A-E,
// a reserved gap, credit block in columns I-J, headers in row 1.
type Layout struct {
	DebitHeaders   []string `yaml:"debit_headers"`
	CreditHeaders  []string `yaml:"credit_headers"`
	DebitStartCol  int      `yaml:"debit_start_col"`
	CreditStartCol int      `yaml:"credit_start_col"`
	CurrencyFormat string   `yaml:"currency_format"`
	DueSoonDays    int      `yaml:"due_soon_days"`
	HorizonDays    int      `yaml:"horizon_days"`
}

// DefaultLayout returns the built-in layout.
func DefaultLayout() Layout {
	return Layout{
		DebitHeaders:   []string{"FECHA", "VENCIMIENTO", "N°", "MONTO", "RECHAZO"},
		CreditHeaders:  []string{"FECHA", "MONTO"},
		DebitStartCol:  1, // column A
		CreditStartCol: 9, // column I
		CurrencyFormat: `"$"#,##0.00`,
		DueSoonDays:    3,
		HorizonDays:    7,
	}
}

// LoadLayout reads a layout profile from a YAML file. Fields left
// unset fall back to the defaults, so a profile can override just the
// header labels or just the aging windows.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to read layout file: %w", err)
	}

	layout := DefaultLayout()
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return Layout{}, fmt.Errorf("failed to parse layout YAML: %w", err)
	}

	if len(layout.DebitHeaders) != 5 {
		return Layout{}, fmt.Errorf("layout must define exactly 5 debit headers, got %d", len(layout.DebitHeaders))
	}
	if len(layout.CreditHeaders) != 2 {
		return Layout{}, fmt.Errorf("layout must define exactly 2 credit headers, got %d", len(layout.CreditHeaders))
	}
	if layout.DebitStartCol < 1 || layout.CreditStartCol < layout.DebitStartCol+5 {
		return Layout{}, fmt.Errorf("credit block (col %d) must not overlap the debit block (col %d)", layout.CreditStartCol, layout.DebitStartCol)
	}
	return layout, nil
}

// Windows returns the aging windows configured by the layout.
func (l Layout) Windows() ledger.AgingWindows {
	return ledger.AgingWindows{DueSoonDays: l.DueSoonDays, HorizonDays: l.HorizonDays}
}
