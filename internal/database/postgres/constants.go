package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"

	// PgErrorCodeCheckViolation is the PostgreSQL error code for CHECK constraint violations
	PgErrorCodeCheckViolation = "23514"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
	ErrMsgFailedToRollback          = "failed to rollback transaction"
)

// Error Messages - User Operations
const (
	ErrMsgFailedToGetUser     = "failed to get user"
	ErrMsgFailedToInsertUser  = "failed to insert user"
	ErrMsgFailedToUpdateUser  = "failed to update user"
	ErrMsgFailedToAdjustMoney = "failed to adjust currency"
	ErrMsgFailedToAddXP       = "failed to add experience"
)

// Error Messages - Plot Operations
const (
	ErrMsgFailedToGetPlots   = "failed to get plots"
	ErrMsgFailedToInsertPlot = "failed to insert plot"
	ErrMsgFailedToUpdatePlot = "failed to update plot"
)

// Error Messages - Inventory Operations
const (
	ErrMsgFailedToGetInventory = "failed to get inventory"
	ErrMsgFailedToAdjustItem   = "failed to adjust inventory item"
)

// Error Messages - Sign-in Operations
const (
	ErrMsgFailedToGetSignIn    = "failed to get sign-in"
	ErrMsgFailedToInsertSignIn = "failed to insert sign-in"
)

// Error Messages - Cooldown Operations
const (
	ErrMsgFailedToGetCooldown = "failed to get cooldown"
	ErrMsgFailedToSetCooldown = "failed to set cooldown"
)

// SQL statements
const (
	sqlSelectUser = `
		SELECT uid, name, experience, currency, created_at
		FROM users
		WHERE uid = $1`

	sqlSelectUserForUpdate = sqlSelectUser + `
		FOR UPDATE`

	sqlInsertUser = `
		INSERT INTO users (uid, name, experience, currency, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	sqlUpdateUserName = `UPDATE users SET name = $2 WHERE uid = $1`

	// conditional update: zero rows affected means the balance would go negative
	sqlAdjustCurrency = `
		UPDATE users SET currency = currency + $2
		WHERE uid = $1 AND currency + $2 >= 0
		RETURNING currency`

	sqlAddExperience = `
		UPDATE users SET experience = experience + $2
		WHERE uid = $1 AND experience + $2 >= 0
		RETURNING experience`

	sqlUserExists = `SELECT EXISTS (SELECT 1 FROM users WHERE uid = $1)`

	sqlSelectPlots = `
		SELECT uid, idx, level, state, crop_id, planted_at, stolen_yield
		FROM plots
		WHERE uid = $1
		ORDER BY idx`

	sqlSelectPlotsForUpdate = sqlSelectPlots + `
		FOR UPDATE`

	sqlInsertPlot = `
		INSERT INTO plots (uid, idx, level, state, crop_id, planted_at, stolen_yield)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	sqlUpdatePlot = `
		UPDATE plots
		SET level = $3, state = $4, crop_id = $5, planted_at = $6, stolen_yield = $7
		WHERE uid = $1 AND idx = $2`

	sqlSelectInventory = `
		SELECT item_id, count
		FROM inventory
		WHERE uid = $1 AND count > 0`

	sqlCreditItem = `
		INSERT INTO inventory (uid, item_id, count)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid, item_id) DO UPDATE
		SET count = inventory.count + EXCLUDED.count
		RETURNING count`

	// conditional update: zero rows affected means the count would go negative
	sqlDebitItem = `
		UPDATE inventory SET count = count + $3
		WHERE uid = $1 AND item_id = $2 AND count + $3 >= 0
		RETURNING count`

	sqlSelectSignIn = `
		SELECT uid, date, streak_day, currency_reward, experience_reward, claimed_at
		FROM signins
		WHERE uid = $1 AND date = $2`

	sqlInsertSignIn = `
		INSERT INTO signins (uid, date, streak_day, currency_reward, experience_reward, claimed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	sqlSelectCooldown = `
		SELECT last_used_at
		FROM user_cooldowns
		WHERE user_id = $1 AND action_name = $2`

	sqlUpsertCooldown = `
		INSERT INTO user_cooldowns (user_id, action_name, last_used_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, action_name) DO UPDATE
		SET last_used_at = EXCLUDED.last_used_at`
)

// Error Messages - Event Journal Operations
const (
	ErrMsgFailedToLogEvent      = "failed to log event"
	ErrMsgFailedToGetEvents     = "failed to get events"
	ErrMsgFailedToCleanupEvents = "failed to clean up events"
)
