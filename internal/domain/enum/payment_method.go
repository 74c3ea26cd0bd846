package enum

import (
	"encoding/json"
	"strings"
)

// PaymentMethod is how a bill was settled
type PaymentMethod int

const (
	PaymentMethodCash     PaymentMethod = 0
	PaymentMethodMomo     PaymentMethod = 1
	PaymentMethodTransfer PaymentMethod = 2
	PaymentMethodCard     PaymentMethod = 3
)

func (m PaymentMethod) String() string {
	names := [...]string{"cash", "momo", "transfer", "card"}
	if int(m) < 0 || int(m) >= len(names) {
		return "cash"
	}
	return names[m]
}

// Icon is the app icon shown next to the method on the invoice list.
func (m PaymentMethod) Icon() string {
	switch m {
	case PaymentMethodCash:
		return "cash"
	case PaymentMethodMomo:
		return "card"
	default:
		return "wallet"
	}
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, _ := ParsePaymentMethod(str)
	*m = parsed
	return nil
}

// ParsePaymentMethod reports false for methods the POS does not know;
// the returned method is then cash.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return PaymentMethodCash, true
	case "momo":
		return PaymentMethodMomo, true
	case "transfer", "bank":
		return PaymentMethodTransfer, true
	case "card":
		return PaymentMethodCard, true
	default:
		return PaymentMethodCash, false
	}
}

// PaymentIcon picks the list icon for a raw method string.
func PaymentIcon(method string) string {
	m, ok := ParsePaymentMethod(method)
	if !ok {
		return "wallet"
	}
	return m.Icon()
}
