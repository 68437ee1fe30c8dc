package currency

import (
	"github.com/Brawl345/doggobot/utils"
	"github.com/Brawl345/doggobot/utils/httpUtils"
)

// euroTokenID is the CoinGecko identifier of the Euro Tether stablecoin,
// whose dollar price tracks the EUR/USD exchange rate.
const euroTokenID = "tether-eurt"

var apiUrl = "https://api.coingecko.com/api/v3/simple/price?ids=" + euroTokenID + "&vs_currencies=usd"

type (
	// Response maps token identifiers to their quoted prices.
	Response map[string]TokenPrice

	TokenPrice struct {
		USD float64 `json:"usd"`
	}
)

// EuroRate returns the dollar price of one Euro, or false when the
// quote is missing from the response.
func (r Response) EuroRate() (float64, bool) {
	price, ok := r[euroTokenID]
	if !ok {
		return 0, false
	}
	return price.USD, true
}

func getEuroRate() (Response, error) {
	var response Response
	err := httpUtils.MakeRequest(httpUtils.RequestOptions{
		Method: httpUtils.MethodGet,
		URL:    apiUrl,
		Headers: map[string]string{
			"User-Agent": utils.UserAgent,
		},
		Response: &response,
	})
	return response, err
}
