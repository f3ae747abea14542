package report

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthtrack-backend/internal/date"
	"github.com/simaogato/wealthtrack-backend/internal/usecase/performance"
)

const (
	twrPrecision   = 4
	moneyPrecision = 2
)

// Calculation is the presented form of one window
type Calculation struct {
	AnnualizedTWR *float64 `json:"annualizedTwr"`
	CapitalChange *float64 `json:"capitalChange,omitempty"`
	ValueChange   *float64 `json:"valueChange,omitempty"`
	ProfitChange  *float64 `json:"profitChange,omitempty"`
}

// Periods maps "total", "1M", "1Y" and "3Y" to their calculation, nil when there is no data
type Periods map[string]*Calculation

// AssetPerformance is the performance of one asset
type AssetPerformance struct {
	ID          string  `json:"id"`
	Performance Periods `json:"performance"`
}

// PerformanceReport is the response of a performance query
type PerformanceReport struct {
	EndDate   date.Date          `json:"endDate"`
	Portfolio Periods            `json:"portfolio"`
	Assets    []AssetPerformance `json:"assets,omitempty"`
}

// HistoryRow is one chart point: [date, capital, value, profit, totalTwr, 1M, 1Y, 3Y]
// TWR cells are nil when the window had no data at that date
type HistoryRow []interface{}

// AssetHistory is the chart series of one asset
type AssetHistory struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Group   string       `json:"group"`
	Values  []HistoryRow `json:"values"`
	Value   float64      `json:"value"`
	Capital float64      `json:"capital"`
}

// HistoryReport is the response of a history query
type HistoryReport struct {
	EndDate   date.Date      `json:"endDate"`
	Portfolio []HistoryRow   `json:"portfolio"`
	Assets    []AssetHistory `json:"assets,omitempty"`
}

// round rounds half away from zero to the given number of decimal digits
func round(value float64, precision int) float64 {
	pow := math.Pow(10, float64(precision))
	return math.Round(value*pow) / pow
}

// presentTWR rounds a TWR. Non-finite values (a large gain annualized over a
// few days overflows) are presented as missing, since JSON cannot carry them
func presentTWR(twr *float64) *float64 {
	if twr == nil || math.IsInf(*twr, 0) || math.IsNaN(*twr) {
		return nil
	}
	rounded := round(*twr, twrPrecision)
	return &rounded
}

func presentMoney(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.Round(moneyPrecision).InexactFloat64()
	return &f
}

func presentPeriods(calc performance.PeriodCalculation) Periods {
	periods := make(Periods, len(calc))
	for key, c := range calc {
		if c == nil {
			periods[key] = nil
			continue
		}
		periods[key] = &Calculation{
			AnnualizedTWR: presentTWR(c.AnnualizedTWR),
			CapitalChange: presentMoney(c.CapitalChange),
			ValueChange:   presentMoney(c.ValueChange),
			ProfitChange:  presentMoney(c.ProfitChange),
		}
	}
	return periods
}

// twrCell returns the presented TWR of a window, or nil
func twrCell(calc *performance.AnnualizedCalculation) interface{} {
	if calc == nil {
		return nil
	}
	if twr := presentTWR(calc.AnnualizedTWR); twr != nil {
		return *twr
	}
	return nil
}

func presentRows(history performance.PeriodHistory) []HistoryRow {
	rows := make([]HistoryRow, 0, len(history))
	for _, entry := range history {
		row := HistoryRow{
			entry.Change.Date.String(),
			entry.Change.Capital.InexactFloat64(),
			entry.Change.Value.InexactFloat64(),
			entry.Change.Profit().InexactFloat64(),
			twrCell(entry.Calculation.Total()),
		}
		for _, p := range performance.Periods {
			row = append(row, twrCell(entry.Calculation[p.Name]))
		}
		rows = append(rows, row)
	}
	return rows
}
