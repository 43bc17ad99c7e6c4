package booking

import (
	"math"

	"pizzeria/config"
	"pizzeria/models"
)

const (
	fallbackUnitPrice = 10000

	workshopSmallGroup  = 15 // up to this many participants pay full price
	workshopMediumGroup = 25 // up to this many get the medium discount
	partyGroupThreshold = 20

	workshopMediumDiscount = 0.90
	workshopLargeDiscount  = 0.85
	partyGroupDiscount     = 0.90
)

// PriceList holds the base per-participant prices.
type PriceList struct {
	Workshop   float64
	PizzaParty float64
}

func DefaultPriceList() PriceList {
	return PriceList{Workshop: 13500, PizzaParty: 11990}
}

// PriceListFromConfig reads the configured prices, falling back to the defaults for unset values.
func PriceListFromConfig(cfg config.Config) PriceList {
	p := DefaultPriceList()
	if cfg.DefaultWorkshopPrice > 0 {
		p.Workshop = cfg.DefaultWorkshopPrice
	}
	if cfg.DefaultPizzaPartyPrice > 0 {
		p.PizzaParty = cfg.DefaultPizzaPartyPrice
	}
	return p
}

// UnitPrice returns the per-participant price after group discounts. Discounted prices are
// rounded to whole pesos here, before they are multiplied by the participant count.
func UnitPrice(serviceType models.ServiceType, participants int, prices PriceList) float64 {
	switch serviceType {
	case models.ServiceWorkshop:
		switch {
		case participants <= workshopSmallGroup:
			return prices.Workshop
		case participants <= workshopMediumGroup:
			return math.Round(prices.Workshop * workshopMediumDiscount)
		default:
			return math.Round(prices.Workshop * workshopLargeDiscount)
		}
	case models.ServicePizzaParty:
		if participants >= partyGroupThreshold {
			return math.Round(prices.PizzaParty * partyGroupDiscount)
		}
		return prices.PizzaParty
	default:
		return fallbackUnitPrice
	}
}

// CalculatePrice is the estimated total for a booking. Negative participant counts are not
// rejected and yield a negative total.
func CalculatePrice(serviceType models.ServiceType, participants int, prices PriceList) float64 {
	return UnitPrice(serviceType, participants, prices) * float64(participants)
}
