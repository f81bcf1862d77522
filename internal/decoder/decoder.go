package decoder

import (
	"context"
	"encoding/xml"
	"errors"
	"html"
	"io"

	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"github.com/samber/lo"
)

// itemElement is name of Trading API element holding single item.
const itemElement = "Item"

// Decoder decodes Trading API xml responses into listings.
type Decoder struct{}

// Decode decodes listings from every Item element of xmlFile and returns each listing with decoding error into output channel.
func (d Decoder) Decode(ctx context.Context, xmlFile io.Reader, output chan<- models.ParsingResult) error {
	dec := xml.NewDecoder(xmlFile)
	dec.Strict = true

	for {
		token, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch element := token.(type) {
		case xml.StartElement:
			if element.Name.Local != itemElement {
				continue
			}
			var item node
			err = dec.DecodeElement(&item, &element)

			var listing models.Listing
			if err == nil {
				listing, err = toAppListing(item.toRaw())
				unescapeListingFields(&listing)
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case output <- models.ParsingResult{
				Listing: listing,
				Error:   err,
			}:
			}
		default:
			continue
		}
	}
}

// unescapeListingFields unescapes html characters from listing title and subtitle.
func unescapeListingFields(listing *models.Listing) {
	listing.Title = html.UnescapeString(listing.Title)
	if listing.Subtitle != nil {
		listing.Subtitle = lo.ToPtr(html.UnescapeString(*listing.Subtitle))
	}
}
