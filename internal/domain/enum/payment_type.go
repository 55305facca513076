package enum

// PaymentType is how an externally confirmed payment was made
type PaymentType string

const (
	PaymentTypeCash         PaymentType = "cash"
	PaymentTypeBankTransfer PaymentType = "bank_transfer"
	PaymentTypeCard         PaymentType = "card"
	PaymentTypeOnline       PaymentType = "online"
)

func (p PaymentType) String() string {
	return string(p)
}

// IsValid reports whether p is a supported payment type
func (p PaymentType) IsValid() bool {
	switch p {
	case PaymentTypeCash, PaymentTypeBankTransfer, PaymentTypeCard, PaymentTypeOnline:
		return true
	}
	return false
}
