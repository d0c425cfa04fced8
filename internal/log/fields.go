package log

// Common field names for structured logging
const (
	FieldComponent      = "component"
	FieldOperation      = "operation"
	FieldError          = "error"
	FieldAmount         = "amount"
	FieldCategory       = "category"
	FieldTransactionID  = "transaction_id"
	FieldGoalID         = "goal_id"
	FieldGoalName       = "goal_name"
	FieldReminderID     = "reminder_id"
	FieldReminderTitle  = "reminder_title"
	FieldFrequency      = "frequency"
	FieldNotificationID = "notification_id"
	FieldLastReset      = "last_reset"
	FieldTick           = "tick"
	FieldDBPath         = "db_path"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentLedger    = "ledger"
	ComponentScheduler = "scheduler"
	ComponentStorage   = "storage"
	ComponentAlerter   = "alerter"
	ComponentExport    = "export"
)

// Operations defines standard operation names
const (
	OpAddTransaction = "add_transaction"
	OpAddGoal        = "add_goal"
	OpContribute     = "contribute"
	OpDeleteGoal     = "delete_goal"
	OpImport         = "import"
	OpExport         = "export"
	OpRollover       = "rollover"
	OpMigrate        = "migrate"
	OpSave           = "save"
	OpLoad           = "load"
	OpTick           = "tick"
	OpValidate       = "validate"
	OpStartup        = "startup"
	OpShutdown       = "shutdown"
)
