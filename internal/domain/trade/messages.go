package trade

// Notification and status keys resolved by the message catalog.
const (
	MsgTradeSucceeded        = "trade_succeeded"
	MsgNotEnoughMoneyYou     = "not_enough_money_you"
	MsgNotEnoughMoneyPartner = "not_enough_money_partner"
	MsgPlayerAbortedTrade    = "player_aborted_trade"
	MsgYouAbortedTrade       = "you_aborted_trade"

	StatusPartnerNotReady       = "partner_not_ready"
	StatusPartnerReady          = "partner_ready"
	StatusPartnerAccepted       = "partner_accepted_trade"
	StatusPartnerNotAcceptedYet = "partner_not_accepted_yet"
)
