package models

import "time"

// Asset representa una tenencia dentro del portafolio. La identidad del
// activo es la tripla (type, symbol, exchange): nunca hay dos entradas
// con la misma tripla en un portafolio.
type Asset struct {
	Type                 string    `json:"type"`
	Symbol               string    `json:"symbol"`
	Exchange             string    `json:"exchange,omitempty"`
	Quantity             float64   `json:"quantity"`
	AveragePurchasePrice float64   `json:"average_purchase_price"`
	CurrentPrice         float64   `json:"current_price,omitempty"` // suministrado externamente, nunca se consulta
	UnrealizedGainLoss   float64   `json:"unrealized_gain_loss"`
	RealizedGainLoss     float64   `json:"realized_gain_loss"`
	CreatedAt            time.Time `json:"created_at"`
}

// PortfolioTransaction es una entrada del log de compras del portafolio
type PortfolioTransaction struct {
	AssetSymbol     string    `json:"asset_symbol"`
	AssetType       string    `json:"asset_type"`
	AssetExchange   string    `json:"asset_exchange,omitempty"`
	Action          string    `json:"action"`
	Quantity        float64   `json:"quantity"`
	PricePerUnit    float64   `json:"price_per_unit"`
	TotalCost       float64   `json:"total_cost"`
	TransactionDate time.Time `json:"transaction_date"`
}

type Portfolio struct {
	ID                      string                 `json:"id"`
	UserID                  string                 `json:"user_id"`
	Assets                  []Asset                `json:"assets"`
	Transactions            []PortfolioTransaction `json:"transactions"`
	TotalValue              float64                `json:"total_value"`
	TotalUnrealizedGainLoss float64                `json:"total_unrealized_gain_loss"`
	TotalRealizedGainLoss   float64                `json:"total_realized_gain_loss"`
	// Métricas reservadas; se persisten pero ninguna operación las calcula todavía
	TotalReturn      float64   `json:"total_return"`
	AnnualizedReturn float64   `json:"annualized_return"`
	Volatility       float64   `json:"volatility"`
	SharpeRatio      float64   `json:"sharpe_ratio"`
	MaximumDrawdown  float64   `json:"maximum_drawdown"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// AssetInput valida el alta de un activo. El precio es el precio de compra
// de esta operación, no el promedio resultante.
type AssetInput struct {
	Type                 string  `json:"type" binding:"required"`
	Symbol               string  `json:"symbol" binding:"required"`
	Exchange             string  `json:"exchange"`
	Quantity             float64 `json:"quantity" binding:"required,gt=0"`
	AveragePurchasePrice float64 `json:"average_purchase_price" binding:"required,gt=0"`
}

// NewAveragePrice calcula el precio promedio ponderado al mezclar una compra
// adicional con la tenencia existente
func NewAveragePrice(currentQuantity, currentAvgPrice, additionalQuantity, additionalPrice float64) float64 {
	totalCost := currentQuantity*currentAvgPrice + additionalQuantity*additionalPrice
	newQuantity := currentQuantity + additionalQuantity
	return totalCost / newQuantity
}

// FindAsset busca el activo con la tripla exacta (type, symbol, exchange)
func (p *Portfolio) FindAsset(assetType, symbol, exchange string) *Asset {
	for i := range p.Assets {
		a := &p.Assets[i]
		if a.Type == assetType && a.Symbol == symbol && a.Exchange == exchange {
			return a
		}
	}
	return nil
}

// UpsertAsset mezcla una compra en la tenencia existente o crea una nueva
// entrada si la tripla no existe todavía
func (p *Portfolio) UpsertAsset(input AssetInput, now time.Time) {
	existing := p.FindAsset(input.Type, input.Symbol, input.Exchange)

	if existing != nil {
		existing.AveragePurchasePrice = NewAveragePrice(
			existing.Quantity,
			existing.AveragePurchasePrice,
			input.Quantity,
			input.AveragePurchasePrice,
		)
		existing.Quantity += input.Quantity

		// Solo recalculamos la ganancia no realizada si hay precio de mercado
		if existing.CurrentPrice > 0 {
			existing.UnrealizedGainLoss = (existing.CurrentPrice - existing.AveragePurchasePrice) * existing.Quantity
		}
	} else {
		p.Assets = append(p.Assets, Asset{
			Type:                 input.Type,
			Symbol:               input.Symbol,
			Exchange:             input.Exchange,
			Quantity:             input.Quantity,
			AveragePurchasePrice: input.AveragePurchasePrice,
			UnrealizedGainLoss:   0,
			RealizedGainLoss:     0,
			CreatedAt:            now,
		})
	}

	p.Transactions = append(p.Transactions, PortfolioTransaction{
		AssetSymbol:     input.Symbol,
		AssetType:       input.Type,
		AssetExchange:   input.Exchange,
		Action:          "buy",
		Quantity:        input.Quantity,
		PricePerUnit:    input.AveragePurchasePrice,
		TotalCost:       input.Quantity * input.AveragePurchasePrice,
		TransactionDate: now,
	})
}

// RemoveAsset elimina exactamente la entrada que coincide con la tripla.
// Devuelve false si no existe.
func (p *Portfolio) RemoveAsset(assetType, symbol, exchange string) bool {
	for i := range p.Assets {
		a := p.Assets[i]
		if a.Type == assetType && a.Symbol == symbol && a.Exchange == exchange {
			p.Assets = append(p.Assets[:i], p.Assets[i+1:]...)
			return true
		}
	}
	return false
}

// RecalculateTotals recomputa los agregados del portafolio desde cero.
// Siempre es una recomputación completa sobre el estado actual, nunca una
// acumulación incremental, para que no haya deriva tras mutaciones sucesivas.
func (p *Portfolio) RecalculateTotals() {
	totalValue := 0.0
	totalUnrealized := 0.0

	for _, a := range p.Assets {
		price := a.CurrentPrice
		if price == 0 {
			price = a.AveragePurchasePrice
		}
		totalValue += price * a.Quantity
		totalUnrealized += a.UnrealizedGainLoss
	}

	p.TotalValue = totalValue
	p.TotalUnrealizedGainLoss = totalUnrealized
}
