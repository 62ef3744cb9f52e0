package machshop

// WorkOrder is a manufacturing work order. Operation links point at the
// renamed Operation routing models.
type WorkOrder struct {
	ID              string `json:"id,omitempty"`
	WorkOrderNumber string `json:"workOrderNumber"`
	PartNumber      string `json:"partNumber"`
	QuantityOrdered int    `json:"quantityOrdered"`
	Status          string `json:"status,omitempty"`
	Priority        string `json:"priority,omitempty"`
	OperationID     string `json:"operationId,omitempty"`
}

// Material is a raw material or purchased part master record.
type Material struct {
	ID             string `json:"id,omitempty"`
	MaterialNumber string `json:"materialNumber"`
	Description    string `json:"description,omitempty"`
	UnitOfMeasure  string `json:"unitOfMeasure,omitempty"`
	LotControlled  bool   `json:"lotControlled,omitempty"`
}

// QualityInspection is a first-article inspection record.
type QualityInspection struct {
	ID          string `json:"id,omitempty"`
	WorkOrderID string `json:"workOrderId,omitempty"`
	PartNumber  string `json:"partNumber,omitempty"`
	Status      string `json:"status,omitempty"`
	Result      string `json:"result,omitempty"`
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Data  []T `json:"data"`
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
	Total int `json:"total,omitempty"`
}
