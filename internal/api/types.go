// internal/api/types.go
//
// Wire types for the PetManager backend.
//
// Context
// -------
// Request payloads carry `validate` tags enforced before the wire; the
// invariant is that a payload only ever holds values that already passed
// their form validators, and the tags catch programming errors where a
// handler builds a payload by hand.  Response types are plain except where
// an endpoint's consumers re-check the shape (users, products).
//
// Notes
// -----
// • Field names follow the backend's JSON contract exactly.

package api

//
// auth
//

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	IDNumber    string `json:"idNumber" validate:"required,numeric,min=7,max=10"`
	IDType      string `json:"idType" validate:"required"`
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the session bearer token.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

//
// suppliers
//

// PaymentCondition is the agreed payment schedule for a supplier.
type PaymentCondition struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Supplier is a provider record as the backend returns it.
type Supplier struct {
	ID               int              `json:"id"`
	NIT              string           `json:"nit"`
	Name             string           `json:"name"`
	PhoneNumber      string           `json:"phoneNumber"`
	Address          string           `json:"address"`
	Email            string           `json:"email"`
	PaymentCondition PaymentCondition `json:"paymentCondition"`
	PaymentNotes     string           `json:"paymentNotes,omitempty"`
}

// CreateSupplier is the body of POST /api/suppliers.
type CreateSupplier struct {
	NIT                string `json:"nit" validate:"required"`
	Name               string `json:"name" validate:"required,max=100"`
	PhoneNumber        string `json:"phoneNumber" validate:"required,max=20"`
	Address            string `json:"address" validate:"required,max=255"`
	Email              string `json:"email" validate:"required,email,max=255"`
	PaymentConditionID int    `json:"paymentConditionId" validate:"required"`
	PaymentNotes       string `json:"paymentNotes,omitempty"`
}

// UpdateSupplier is the body of PUT /api/suppliers/{id}.  Zero-valued
// fields are omitted so partial updates stay partial.
type UpdateSupplier struct {
	NIT                string `json:"nit,omitempty"`
	Name               string `json:"name,omitempty" validate:"omitempty,max=100"`
	PhoneNumber        string `json:"phoneNumber,omitempty" validate:"omitempty,max=20"`
	Address            string `json:"address,omitempty" validate:"omitempty,max=255"`
	Email              string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	PaymentConditionID int    `json:"paymentConditionId,omitempty"`
	PaymentNotes       string `json:"paymentNotes,omitempty"`
}

//
// products
//

// Product is a catalogue item.
type Product struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name" validate:"required"`
	Brand       string `json:"brand"`
	Description string `json:"description"`
}

// SupplierProductLink is the response of POST /api/products/supplier-product.
type SupplierProductLink struct {
	ID       int      `json:"id"`
	Supplier Supplier `json:"supplier"`
	Product  Product  `json:"product"`
}

// SupplierProducts is the response of GET /api/products/supplier/{id}.
type SupplierProducts struct {
	SupplierID       int    `json:"supplierId"`
	SupplierName     string `json:"supplierName"`
	SupplierProducts []struct {
		SupplierProductID int     `json:"supplierProductId"`
		Product           Product `json:"product"`
	} `json:"supplierProducts"`
}

//
// payments
//

// PaymentProduct is one line of a scheduled payment.
type PaymentProduct struct {
	Product      Product `json:"product" validate:"required"`
	Quantity     float64 `json:"quantity" validate:"min=0"`
	PricePerUnit float64 `json:"pricePerUnit" validate:"required,gt=0"`
}

// Payment is a scheduled or settled payment.
type Payment struct {
	PaymentID   int              `json:"paymentId"`
	PaymentDate string           `json:"paymentDate"`
	Amount      float64          `json:"amount"`
	Products    []PaymentProduct `json:"products"`
	Notes       string           `json:"notes,omitempty"`
}

// CreatePayment is the body of POST /api/payments.
type CreatePayment struct {
	SupplierID  int              `json:"supplierId" validate:"required"`
	PaymentDate string           `json:"paymentDate" validate:"required,datetime=2006-01-02"`
	Products    []PaymentProduct `json:"products" validate:"required,min=1,dive"`
	Notes       string           `json:"notes,omitempty"`
}

// SupplierPayments is the response of GET /api/payments/supplier/{id}.
type SupplierPayments struct {
	SupplierID int       `json:"supplierId"`
	Payments   []Payment `json:"payments"`
}

// LastAndNextPayment is the response of
// GET /api/payments/supplier/{id}/last-and-next.  Either pointer may be
// nil when the supplier has no history or nothing scheduled.
type LastAndNextPayment struct {
	SupplierID int      `json:"supplierId"`
	Next       *Payment `json:"next"`
	Last       *Payment `json:"last"`
}

// PaymentConditions is the response of GET /api/payments/conditions.
type PaymentConditions struct {
	PaymentConditions []PaymentCondition `json:"paymentConditions"`
}

//
// users and roles
//

// Role groups permissions on the backend.
type Role struct {
	ID          int    `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

// CreateRole is the body of POST /api/users/roles.
type CreateRole struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description,omitempty" validate:"omitempty,max=255"`
}

// User is a console operator account.
type User struct {
	ID          int    `json:"id" validate:"required"`
	IDNumber    string `json:"idNumber" validate:"required"`
	IDType      string `json:"idType" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Role        Role   `json:"role"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email" validate:"required,email"`
	Active      bool   `json:"active"`
}

// CreateUser is the body of POST /api/users.
type CreateUser struct {
	IDNumber    string `json:"idNumber" validate:"required,numeric,min=7,max=10"`
	IDType      string `json:"idType" validate:"required"`
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
}

// UpdateUser is the body of PUT /api/users/{id}.
type UpdateUser struct {
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Active      *bool  `json:"active,omitempty"`
}
