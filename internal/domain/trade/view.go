package trade

// Control is the state of a participant's own control field.
type Control string

const (
	ControlDefault       Control = "DEFAULT"
	ControlReadyWaiting  Control = "READY_WAITING"
	ControlAccept        Control = "ACCEPT"
	ControlAcceptWaiting Control = "ACCEPT_WAITING"
)

// View is one participant's session window: their own offer, the mirrored
// partner offer and the rendering state of the status and control fields.
type View struct {
	Slots         [ViewSize]ItemStack `json:"slots"`
	MoneyEnabled  bool                `json:"moneyEnabled"`
	OwnMoney      int64               `json:"ownMoney"`
	PartnerMoney  int64               `json:"partnerMoney"`
	PartnerReady  bool                `json:"partnerReady"`
	PartnerStatus string              `json:"partnerStatus"`
	Control       Control             `json:"control"`
}

func newView(moneyEnabled bool) *View {
	return &View{
		MoneyEnabled:  moneyEnabled,
		PartnerStatus: StatusPartnerNotReady,
		Control:       ControlDefault,
	}
}

func (v *View) setPartnerStatus(ready bool, status string) {
	v.PartnerReady = ready
	v.PartnerStatus = status
}
