// Package dialog tracks where each user currently is inside a multi-step
// conversation. States form a closed set of variants so handlers can switch
// exhaustively instead of probing map shapes.
package dialog

import "bazaarbot/internal/models"

// State is one variant of the conversation state machine. The set is
// closed: only types in this package implement it.
type State interface {
	isState()
}

// AwaitingPassword marks a user who ran /admin and owes a password.
type AwaitingPassword struct{}

// AwaitingBroadcast marks an admin whose next text becomes a broadcast.
type AwaitingBroadcast struct{}

// RegStep enumerates the registration steps.
type RegStep int

const (
	RegWaitingName RegStep = iota
	RegWaitingPhone
	RegWaitingCity
)

// Registration carries the partial profile collected so far.
type Registration struct {
	Step      RegStep
	FirstName string
	LastName  string
	Phone     *string
}

// ProfileField names a user profile column editable one at a time.
type ProfileField string

const (
	ProfilePhone     ProfileField = "phone"
	ProfileFirstName ProfileField = "first_name"
	ProfileLastName  ProfileField = "last_name"
	ProfileCity      ProfileField = "city"
)

// ProfileEdit awaits the new value for one profile field.
type ProfileEdit struct {
	Field ProfileField
}

// ProductStep enumerates the product creation steps.
type ProductStep int

const (
	ProductWaitingName ProductStep = iota
	ProductWaitingPrice
	ProductWaitingImage
	ProductWaitingDescription
)

// ProductCreate carries the partial product collected so far. Image holds
// a photo queued for attachment once the product row exists.
type ProductCreate struct {
	Step        ProductStep
	Name        string
	Price       int64
	Image       *models.PhotoRef
	Description *string
}

// ProductField names a product column editable one at a time.
type ProductField string

const (
	ProductName        ProductField = "name"
	ProductPrice       ProductField = "price"
	ProductImage       ProductField = "image_url"
	ProductDescription ProductField = "description"
)

// ProductFieldEdit awaits the new value for one product field.
type ProductFieldEdit struct {
	ProductID int64
	Field     ProductField
}

// ImageAdd awaits a photo upload for an existing product's gallery.
type ImageAdd struct {
	ProductID int64
}

// Purchase awaits the payment screenshot. Price was snapshotted from the
// product when the buy button was pressed.
type Purchase struct {
	ProductID int64
	Price     int64
}

func (AwaitingPassword) isState()  {}
func (AwaitingBroadcast) isState() {}
func (Registration) isState()      {}
func (ProfileEdit) isState()       {}
func (ProductCreate) isState()     {}
func (ProductFieldEdit) isState()  {}
func (ImageAdd) isState()          {}
func (Purchase) isState()          {}
