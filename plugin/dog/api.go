package dog

import (
	"fmt"
	"strings"

	"github.com/Brawl345/doggobot/utils"
	"github.com/Brawl345/doggobot/utils/httpUtils"
	"golang.org/x/exp/slices"
)

const statusSuccess = "success"

// apiBase is a variable so tests can point the plugin at a fake server.
var apiBase = "https://dog.ceo/api"

type (
	ImageResponse struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	}

	BreedsResponse struct {
		Message map[string][]string `json:"message"`
		Status  string              `json:"status"`
	}
)

func (r *ImageResponse) Ok() bool {
	return r.Status == statusSuccess
}

func (r *BreedsResponse) Ok() bool {
	return r.Status == statusSuccess
}

// BreedPath turns a user-supplied breed name into the API path segment.
// The API addresses sub-breeds as "breed/sub-breed" while users type
// "sub-breed breed" in natural word order, so the words are reversed:
// "Blue Heeler" -> "heeler/blue".
func BreedPath(name string) string {
	words := strings.Fields(strings.ToLower(name))
	slices.Reverse(words)
	return strings.Join(words, "/")
}

func getRandomImage() (ImageResponse, error) {
	var response ImageResponse
	err := httpUtils.MakeRequest(httpUtils.RequestOptions{
		Method:   httpUtils.MethodGet,
		URL:      apiBase + "/breeds/image/random",
		Headers:  map[string]string{"User-Agent": utils.UserAgent},
		Response: &response,
	})
	return response, err
}

func getBreedImage(breedPath string) (ImageResponse, error) {
	var response ImageResponse
	err := httpUtils.MakeRequest(httpUtils.RequestOptions{
		Method:   httpUtils.MethodGet,
		URL:      fmt.Sprintf("%s/breed/%s/images/random", apiBase, breedPath),
		Headers:  map[string]string{"User-Agent": utils.UserAgent},
		Response: &response,
	})
	return response, err
}

func getAllBreeds() (BreedsResponse, error) {
	var response BreedsResponse
	err := httpUtils.MakeRequest(httpUtils.RequestOptions{
		Method:   httpUtils.MethodGet,
		URL:      apiBase + "/breeds/list/all",
		Headers:  map[string]string{"User-Agent": utils.UserAgent},
		Response: &response,
	})
	return response, err
}
