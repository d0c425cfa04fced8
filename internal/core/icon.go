package core

// Icon is a closed set of symbolic goal tags. The core never resolves an
// icon to a presentation asset; the UI boundary owns that mapping.
type Icon string

const (
	IconTravel    Icon = "travel"
	IconLaptop    Icon = "laptop"
	IconHome      Icon = "home"
	IconCar       Icon = "car"
	IconGift      Icon = "gift"
	IconEducation Icon = "education"
	IconPhone     Icon = "phone"
	IconSavings   Icon = "savings"
	IconOther     Icon = "other"
)

var knownIcons = map[Icon]struct{}{
	IconTravel:    {},
	IconLaptop:    {},
	IconHome:      {},
	IconCar:       {},
	IconGift:      {},
	IconEducation: {},
	IconPhone:     {},
	IconSavings:   {},
	IconOther:     {},
}

// Valid reports whether i is one of the known icon tags.
func (i Icon) Valid() bool {
	_, ok := knownIcons[i]
	return ok
}

// NormalizeIcon maps unknown tags (older snapshots serialized raw emoji
// here) onto IconOther.
func NormalizeIcon(i Icon) Icon {
	if i.Valid() {
		return i
	}
	return IconOther
}
