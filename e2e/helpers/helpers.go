package helpers

import (
	"encoding/json"
	"encoding/xml"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/MichalMitros/listing-migrator/internal/platform/auth"
	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	pgmodels "github.com/MichalMitros/listing-migrator/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/listing-migrator/internal/platform/storage/storagetesting"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const (
	contentType = "Content-Type"
	namespace   = "urn:ebay:apis:eBLBaseComponents"

	// ImageBody is content of every image served by mocked API.
	ImageBody = "jpeg image content"
)

var itemIDPattern = regexp.MustCompile(`<ItemID>(\d+)</ItemID>`)

// Item is source listing served by mocked Trading API.
type Item struct {
	XMLName       xml.Name `xml:"Item"`
	ItemID        string   `xml:"ItemID"`
	SKU           string   `xml:"SKU"`
	Title         string   `xml:"Title"`
	Description   string   `xml:"Description"`
	Quantity      int      `xml:"Quantity"`
	SellingStatus struct {
		CurrentPrice Price `xml:"CurrentPrice"`
		QuantitySold int   `xml:"QuantitySold"`
	} `xml:"SellingStatus"`
	PrimaryCategory struct {
		CategoryID string `xml:"CategoryID"`
	} `xml:"PrimaryCategory"`
	ConditionID    string `xml:"ConditionID"`
	PictureDetails struct {
		PictureURL []string `xml:"PictureURL"`
	} `xml:"PictureDetails"`
}

// Price is item price with currency attribute.
type Price struct {
	Currency string `xml:"currencyID,attr"`
	Value    string `xml:",chardata"`
}

// NewItem returns Item with pictures hosted under imagesURL.
func NewItem(itemID, sku, title, price string, quantity int, imagesURL string, pictures int) Item {
	item := Item{
		ItemID:      itemID,
		SKU:         sku,
		Title:       title,
		Description: "<p>" + title + "</p>",
		Quantity:    quantity,
		ConditionID: "3000",
	}
	item.SellingStatus.CurrentPrice = Price{Currency: "USD", Value: price}
	item.PrimaryCategory.CategoryID = "261186"
	item.PictureDetails.PictureURL = lo.Times(pictures, func(ix int) string {
		return imagesURL + "/images/" + sku + "/" + string(rune('a'+ix)) + ".jpg"
	})

	return item
}

// PrepareMockedAPI returns server mocking Trading API, Sell Account API and image hosting of source account.
func PrepareMockedAPI(t *testing.T, items func() []Item, policies map[models.PolicyType][]map[string]any) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /ws/api.dll", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err, "can't read trading api request")

		w.Header().Set(contentType, "text/xml")
		switch r.Header.Get("X-EBAY-API-CALL-NAME") {
		case "GetSellerList":
			writeXML(t, w, "GetSellerListResponse", struct {
				XMLName xml.Name `xml:"ItemArray"`
				Items   []Item
			}{Items: items()})
		case "GetItem":
			match := itemIDPattern.FindSubmatch(body)
			require.NotNil(t, match, "GetItem request should contain item id")
			item, ok := lo.Find(items(), func(i Item) bool { return i.ItemID == string(match[1]) })
			require.True(t, ok, "GetItem requested unknown item %s", match[1])
			writeXML(t, w, "GetItemResponse", item)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})

	mux.HandleFunc("GET /sell/account/v1/{policy}", func(w http.ResponseWriter, r *http.Request) {
		policyType := models.PolicyType(strings.TrimSuffix(r.PathValue("policy"), "_policy"))
		list, ok := policies[policyType]
		if !ok {
			list = []map[string]any{}
		}
		w.Header().Set(contentType, "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{policyType.ListKey(): list}))
	})

	mux.HandleFunc("GET /images/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(contentType, "image/jpeg")
		_, _ = w.Write([]byte(ImageBody))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func writeXML(t *testing.T, w io.Writer, root string, content any) {
	t.Helper()

	payload, err := xml.Marshal(content)
	require.NoError(t, err, "can't encode response")

	_, err = io.WriteString(w, xml.Header+`<`+root+` xmlns="`+namespace+`"><Ack>Success</Ack>`+string(payload)+`</`+root+`>`)
	require.NoError(t, err, "can't write response")
}

// SaveToken saves valid token of role into token store under dir.
func SaveToken(t *testing.T, dir string, role auth.Role) {
	t.Helper()

	err := auth.NewFileStore(filepath.Join(dir, "tokens")).Save(role, &oauth2.Token{
		AccessToken:  "e2e-" + string(role),
		TokenType:    "Bearer",
		RefreshToken: "e2e-refresh",
		Expiry:       time.Now().Add(time.Hour),
	})
	require.NoError(t, err, "can't save token")
}

// WaitForRunToBeFinished is blocking helper function, returns latest run of step after it is finished.
func WaitForRunToBeFinished(t *testing.T, queryable qrm.Queryable, step models.Step) pgmodels.Run {
	t.Helper()

	timeout := time.After(30 * time.Second)
	for {
		select {
		case <-timeout:
			require.FailNow(t, "run wasn't finished in time", "step %s", step)
		case <-time.After(250 * time.Millisecond):
		}

		runs := lo.Filter(storagetesting.GetRuns(t, queryable), func(run pgmodels.Run, _ int) bool {
			return run.Step == string(step)
		})
		latest := lo.MaxBy(runs, func(a, b pgmodels.Run) bool { return a.ID > b.ID })
		if len(runs) > 0 && latest.FinishedAt != nil {
			return latest
		}
	}
}
