package logging

// Standardized field names for structured logging. Using these constants
// keeps log output consistent across the ingestion, categorization and
// anomaly packages.
const (
	FieldFile          = "file_path"
	FieldTransactionID = "transaction_id"
	FieldMerchant      = "merchant"
	FieldCategory      = "category"
	FieldAnomalyType   = "anomaly_type"
	FieldReason        = "reason"
	FieldOperation     = "operation"
	FieldCount         = "count"
	FieldRow           = "row"
	FieldModel         = "model"
)
