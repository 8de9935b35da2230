package notifier

import (
	"fmt"
	"strings"
	"time"

	"NexSentinel/internal/model"
)

// FormatAnalysisReport formats an analysis run into a Telegram message.
func FormatAnalysisReport(a *model.Analysis, pair *model.TokenPair) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>NexSentinel</b> | %s | %s\n\n", a.Symbol, time.Now().Format("2006-01-02 15:04")))

	if pair != nil {
		b.WriteString(fmt.Sprintf("Current price (USD): %s\n", formatPrice(pair.PriceUSD)))
		b.WriteString(fmt.Sprintf("24h change: %+.2f%%\n", pair.Change24h))
	}
	b.WriteString(fmt.Sprintf("Series: %d points (%s)\n\n", a.Points, a.Source))

	b.WriteString(fmt.Sprintf("📈 <b>SMA %d / %d</b>\n", a.ShortWindow, a.LongWindow))
	if a.HasSMA {
		b.WriteString(fmt.Sprintf("  short: %s | long: %s\n", formatPrice(a.ShortSMA), formatPrice(a.LongSMA)))
	}
	if a.Has(model.ConditionInsufficientSignalData) {
		b.WriteString("  not enough data for the long moving average\n")
	} else if len(a.Events) == 0 {
		b.WriteString("  no crossovers in range\n")
	}
	for _, ev := range a.Events {
		b.WriteString(fmt.Sprintf("  point %d (price %s): %s\n", ev.Index+1, formatPrice(ev.Price), ev.Signal))
	}

	b.WriteString(fmt.Sprintf("\n🔮 <b>Next price</b> (look-back %d)\n", a.LookBack))
	switch {
	case a.HasForecast:
		b.WriteString(fmt.Sprintf("  %s\n", formatPrice(a.Forecast)))
	case a.Has(model.ConditionInsufficientForecastData):
		b.WriteString("  not enough data to train the model\n")
	default:
		b.WriteString("  unavailable\n")
	}
	return b.String()
}

// FormatPair formats the latest pair snapshot.
func FormatPair(pair *model.TokenPair) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("💱 <b>%s</b> on %s (%s)\n\n", pair.Symbol(), pair.ChainID, pair.DexID))
	b.WriteString(fmt.Sprintf("Price (USD): %s\n", formatPrice(pair.PriceUSD)))
	b.WriteString(fmt.Sprintf("24h change: %+.2f%%\n", pair.Change24h))
	b.WriteString(fmt.Sprintf("24h volume: $%.0f\n", pair.VolumeH24))
	b.WriteString(fmt.Sprintf("Liquidity: $%.0f\n", pair.LiquidityUSD))
	return b.String()
}

// formatPrice keeps eight decimals for sub-unit token prices.
func formatPrice(p float64) string {
	if p != 0 && p < 1 && p > -1 {
		return fmt.Sprintf("%.8f", p)
	}
	return fmt.Sprintf("%.2f", p)
}

// FormatForecast formats the forecast line of an analysis.
func FormatForecast(a *model.Analysis) string {
	if !a.HasForecast {
		return fmt.Sprintf("No forecast available for %s (look-back %d).", a.Symbol, a.LookBack)
	}
	return fmt.Sprintf("🔮 %s next price (look-back %d): %s", a.Symbol, a.LookBack, formatPrice(a.Forecast))
}
