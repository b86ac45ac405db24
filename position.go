package positions

// Position is the open holding of one instrument.
type Position struct {
	Instrument string
	AvgPrice   Money    // AvgPrice is the quantity-weighted mean of the buys making up the position.
	Quantity   Quantity // Quantity may transiently reach zero before the position is dropped.
}

// Value is the position's cost: AvgPrice * Quantity.
func (p Position) Value() Money { return p.AvgPrice.Mul(p.Quantity) }

// buy adds a fill to the position and recomputes the average price
//
//	avg = (avg*qty + price*q) / (qty+q)
func (p *Position) buy(price Money, q Quantity) {
	total := p.Quantity.Add(q)
	p.AvgPrice = p.AvgPrice.Mul(p.Quantity).Add(price.Mul(q)).Div(total)
	p.Quantity = total
}

// sell removes q units. The average price is not affected.
func (p *Position) sell(q Quantity) { p.Quantity = p.Quantity.Sub(q) }

func (p Position) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("instrument", p.Instrument)
	w.Append("quantity", p.Quantity)
	w.Append("avgPrice", p.AvgPrice)
	w.Append("value", p.Value())
	return w.MarshalJSON()
}
