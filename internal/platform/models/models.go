package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ParsingResult contains listing decoded from source item with decoding error if there is any.
type ParsingResult struct {
	Listing Listing
	Error   error
}

// PolicyType is business policy kind shared by source and target accounts.
type PolicyType string

// Business policy types.
const (
	PolicyTypeFulfillment PolicyType = "fulfillment"
	PolicyTypePayment     PolicyType = "payment"
	PolicyTypeReturn      PolicyType = "return"
)

// PolicyTypes lists all policy types in the order they are migrated.
var PolicyTypes = []PolicyType{PolicyTypeFulfillment, PolicyTypePayment, PolicyTypeReturn}

// IDKey returns payload key holding policy ID, e.g. "fulfillmentPolicyId".
func (t PolicyType) IDKey() string {
	return string(t) + "PolicyId"
}

// ListKey returns response key holding list of policies, e.g. "fulfillmentPolicies".
func (t PolicyType) ListKey() string {
	return string(t) + "Policies"
}

// SourcePolicy is business policy owned by source account.
type SourcePolicy struct {
	ID             int
	Type           PolicyType
	PolicyID       string
	Name           string
	Description    *string
	Payload        map[string]any
	TargetPolicyID *string
}

// MigrationStatus is listing migration state.
type MigrationStatus string

// Listing migration states.
const (
	StatusNotStarted MigrationStatus = "not_started"
	StatusMigrated   MigrationStatus = "migrated"
	StatusFailed     MigrationStatus = "failed"
)

// ProductIdentifiers holds structured product identifiers of listing.
type ProductIdentifiers struct {
	ISBN  *string `json:"ISBN,omitempty"`
	UPC   *string `json:"UPC,omitempty"`
	EAN   *string `json:"EAN,omitempty"`
	Brand *string `json:"Brand,omitempty"`
	MPN   *string `json:"MPN,omitempty"`
}

// Listing is source marketplace item snapshot with its migration state.
type Listing struct {
	ID                   int
	CreatedAt            time.Time
	UpdatedAt            time.Time
	ItemID               string
	SKU                  string
	Title                string
	Subtitle             *string
	Description          string
	Quantity             int
	Price                decimal.Decimal
	Currency             string
	CategoryID           string
	PaymentPolicyID      *string
	ReturnPolicyID       *string
	ShippingPolicyID     *string
	Aspects              map[string][]string
	ProductIdentifiers   ProductIdentifiers
	Variations           json.RawMessage
	BestOffer            map[string]any
	ConditionID          string
	ConditionDescription *string
	Raw                  map[string]any
	Status               MigrationStatus
	MigrationError       *string
	OfferID              *string

	Images []ListingImage
}

// ListingImage is single picture of listing.
type ListingImage struct {
	ID          int
	ListingID   int
	Rank        int
	OriginalURL string
	LocalPath   *string
	TargetURL   *string
}

// Step is single migration stage.
type Step string

// Migration steps.
const (
	StepExtract  Step = "extract"
	StepDownload Step = "download"
	StepPolicies Step = "sync-policies"
	StepUpload   Step = "upload"
	StepPublish  Step = "publish"
	StepVerify   Step = "verify"
)

// Steps lists all steps in menu order.
var Steps = []Step{StepExtract, StepDownload, StepPolicies, StepUpload, StepPublish, StepVerify}

// Run is migration step run model.
type Run struct {
	ID             int
	Step           Step
	CreatedAt      time.Time
	FinishedAt     *time.Time
	IsSuccess      *bool
	StatusMessage  *string
	SucceededItems *int32
	FailedItems    *int32
}
