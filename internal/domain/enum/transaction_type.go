package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TransactionType is the direction of a stock movement
type TransactionType int

const (
	TransactionTypeStockIn TransactionType = iota + 1
	TransactionTypeStockOut
)

func (t TransactionType) String() string {
	switch t {
	case TransactionTypeStockIn:
		return "STOCK_IN"
	case TransactionTypeStockOut:
		return "STOCK_OUT"
	}
	return ""
}

// ParseTransactionType converts STOCK_IN / STOCK_OUT into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch s {
	case "STOCK_IN":
		return TransactionTypeStockIn, nil
	case "STOCK_OUT":
		return TransactionTypeStockOut, nil
	}
	return 0, fmt.Errorf("unknown transaction type %q", s)
}

func (t TransactionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseTransactionType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value stores the type by name so the table stays readable.
func (t TransactionType) Value() (driver.Value, error) {
	if t.String() == "" {
		return nil, fmt.Errorf("invalid transaction type %d", int(t))
	}
	return t.String(), nil
}

func (t *TransactionType) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into TransactionType", value)
	}
	parsed, err := ParseTransactionType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
