package domain

// Event type constants used for event bus subscriptions and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "crop.harvested")
const (
	// EventTypeUserRegistered is published when a new farmer registers
	EventTypeUserRegistered = "user.registered"

	// EventTypeSeedBought is published when seeds are bought in the shop
	EventTypeSeedBought = "seed.bought"

	// EventTypeCropSold is published when harvested crops are sold
	EventTypeCropSold = "crop.sold"

	// EventTypeCropSown is published when seeds are planted
	EventTypeCropSown = "crop.sown"

	// EventTypeCropHarvested is published after a harvest that credited or cleared plots
	EventTypeCropHarvested = "crop.harvested"

	// EventTypeCropStolen is published when a theft succeeds
	EventTypeCropStolen = "crop.stolen"

	// EventTypePlotReclaimed is published when a new plot is added
	EventTypePlotReclaimed = "plot.reclaimed"

	// EventTypePlotUpgraded is published when a plot level increases
	EventTypePlotUpgraded = "plot.upgraded"

	// EventTypeSignedIn is published when a daily sign-in is claimed
	EventTypeSignedIn = "signin.claimed"
)
