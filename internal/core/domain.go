package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Transfer PaymentMethod = "Transfer"
	Cash     PaymentMethod = "Tunai"
)

const (
	CategoryOperational ExpenseCategory = "Operasional"
	CategorySalary      ExpenseCategory = "Gaji"
	CategoryRent        ExpenseCategory = "Sewa"
	CategoryUtilities   ExpenseCategory = "Listrik & Internet"
	CategoryOther       ExpenseCategory = "Lain-lain"
)

const (
	SubscriptionPPPoE   SubscriptionCategory = "PPPoE"
	SubscriptionStatic  SubscriptionCategory = "Static"
	SubscriptionHotspot SubscriptionCategory = "Hostpot"
	SubscriptionVoucher SubscriptionCategory = "Mitra Voucher"
)

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type (
	TransactionType      string
	PaymentMethod        string
	ExpenseCategory      string
	SubscriptionCategory string
	Role                 string

	// Date wraps an instant whose year/month/day are always read in UTC,
	// so the viewer's local offset never shifts a record into an
	// adjacent month.
	Date struct {
		time.Time
	}

	// Transaction is a single income or expense record. Category is
	// populated iff Type is Expense.
	Transaction struct {
		ID            string          `json:"id"`
		Description   string          `json:"description"`
		Amount        Money           `json:"amount"`
		Type          TransactionType `json:"type"`
		Category      ExpenseCategory `json:"category,omitempty"`
		Date          Date            `json:"date"`
		PaymentMethod PaymentMethod   `json:"paymentMethod"`
	}

	// Customer is a subscriber record with a recurring billing amount.
	// Customers are not linked to transactions.
	Customer struct {
		ID                   string               `json:"id"`
		Name                 string               `json:"name"`
		Phone                string               `json:"phone"`
		Address              string               `json:"address"`
		SubscriptionCategory SubscriptionCategory `json:"subscriptionCategory"`
		Amount               Money                `json:"amount"`
	}

	// Account is a login identity. The password is stored only as a
	// bcrypt hash and never leaves the auth store.
	Account struct {
		ID                 string `json:"id"`
		Username           string `json:"username"`
		PasswordHash       string `json:"passwordHash"`
		Role               Role   `json:"role"`
		MustChangePassword bool   `json:"mustChangePassword,omitempty"`
	}

	// Session is the non-secret projection of an authenticated account.
	Session struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Role     Role   `json:"role"`
	}
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrEmptyDescription    = errors.New("empty description")
	ErrDescriptionTooLong  = errors.New("description too long (max 200 characters)")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrInvalidPayment      = errors.New("invalid payment method")
	ErrInvalidCategory     = errors.New("invalid expense category")
	ErrCategoryOnIncome    = errors.New("income must not carry a category")
	ErrCategoryMissing     = errors.New("expense requires a category")
	ErrEmptyName           = errors.New("empty name")
	ErrInvalidSubscription = errors.New("invalid subscription category")
)

// ExpenseCategories lists the fixed category set in display order.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		CategoryOperational,
		CategorySalary,
		CategoryRent,
		CategoryUtilities,
		CategoryOther,
	}
}

// NewDate builds a Date at UTC midnight of the given calendar day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts either a plain calendar date (2006-01-02) or a full
// RFC 3339 timestamp. Plain dates become UTC midnight.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return Date{Time: t.UTC()}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t.UTC()}, nil
}

// Year returns the calendar year in UTC.
func (d Date) Year() int { return d.Time.UTC().Year() }

// Month returns the calendar month in UTC.
func (d Date) Month() int { return int(d.Time.UTC().Month()) }

// Day returns the day of the month in UTC.
func (d Date) Day() int { return d.Time.UTC().Day() }

// InMonth reports whether the date falls in the given UTC calendar month.
func (d Date) InMonth(year, month int) bool {
	return d.Year() == year && d.Month() == month
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.UTC().Format(time.RFC3339))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

func (p PaymentMethod) Validate() error {
	switch p {
	case Transfer, Cash:
		return nil
	default:
		return ErrInvalidPayment
	}
}

func (c ExpenseCategory) Validate() error {
	for _, known := range ExpenseCategories() {
		if c == known {
			return nil
		}
	}
	return ErrInvalidCategory
}

func (s SubscriptionCategory) Validate() error {
	switch s {
	case SubscriptionPPPoE, SubscriptionStatic, SubscriptionHotspot, SubscriptionVoucher:
		return nil
	default:
		return ErrInvalidSubscription
	}
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if err := t.PaymentMethod.Validate(); err != nil {
		return err
	}
	switch t.Type {
	case Income:
		if t.Category != "" {
			return ErrCategoryOnIncome
		}
	case Expense:
		if t.Category == "" {
			return ErrCategoryMissing
		}
		if err := t.Category.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c Customer) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if err := c.SubscriptionCategory.Validate(); err != nil {
		return err
	}
	if err := c.Amount.Validate(); err != nil {
		return err
	}
	return nil
}

// Session returns the account's non-secret projection.
func (a Account) Session() Session {
	return Session{ID: a.ID, Username: a.Username, Role: a.Role}
}
