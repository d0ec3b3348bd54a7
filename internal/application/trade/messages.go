package trade

const (
	msgCannotTradeWithYourself = "cannot_trade_with_yourself"
	msgPlayerNotOnline         = "player_not_online"
	msgPlayerInOtherWorld      = "player_in_other_world"
	msgPlayerTooFarAway        = "player_to_far_away"
	msgNoRequestSpam           = "no_request_spam"
	msgNoTradeToAccept         = "no_trade_to_accept"
	msgNoTradeToDeny           = "no_trade_to_deny"
	msgSuccessfullyRequested   = "successfully_requested_player"
	msgPlayerWantsToTrade      = "player_wants_to_trade"
	msgTradeDenied             = "trade_denied"
	msgTradeNotPossible        = "trade_not_possible"
	msgRequestNotAccepted      = "trade_request_not_accepted"
	msgNotPossibleInBed        = "trading_not_possible_in_bed"
	msgItemBlacklisted         = "item_blacklisted"
)
