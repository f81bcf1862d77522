package tradingapi

import "encoding/xml"

type pagination struct {
	EntriesPerPage int `xml:"EntriesPerPage"`
	PageNumber     int `xml:"PageNumber"`
}

type getSellerListRequest struct {
	XMLName          xml.Name   `xml:"urn:ebay:apis:eBLBaseComponents GetSellerListRequest"`
	GranularityLevel string     `xml:"GranularityLevel"`
	EndTimeFrom      string     `xml:"EndTimeFrom"`
	EndTimeTo        string     `xml:"EndTimeTo"`
	Pagination       pagination `xml:"Pagination"`
}

type getItemRequest struct {
	XMLName              xml.Name `xml:"urn:ebay:apis:eBLBaseComponents GetItemRequest"`
	ItemID               string   `xml:"ItemID"`
	DetailLevel          string   `xml:"DetailLevel"`
	IncludeItemSpecifics bool     `xml:"IncludeItemSpecifics"`
}

type uploadPictureRequest struct {
	XMLName         xml.Name `xml:"urn:ebay:apis:eBLBaseComponents UploadSiteHostedPicturesRequest"`
	PictureName     string   `xml:"PictureName"`
	ExtensionInDays int      `xml:"ExtensionInDays"`
}

type callError struct {
	ShortMessage string `xml:"ShortMessage"`
	LongMessage  string `xml:"LongMessage"`
	ErrorCode    string `xml:"ErrorCode"`
	SeverityCode string `xml:"SeverityCode"`
}

// callStatus is acknowledgement part common for all Trading API responses.
type callStatus struct {
	Ack    string      `xml:"Ack"`
	Errors []callError `xml:"Errors"`
}

// err returns CallError when call failed.
func (s callStatus) err(callName string) error {
	if s.Ack != "Failure" && s.Ack != "PartialFailure" {
		return nil
	}

	callErr := &CallError{Call: callName}
	for ix, e := range s.Errors {
		if ix == 0 || e.SeverityCode == "Error" {
			callErr.Code = e.ErrorCode
			callErr.Message = e.LongMessage
			if callErr.Message == "" {
				callErr.Message = e.ShortMessage
			}
		}
		if e.SeverityCode == "Error" {
			break
		}
	}

	return callErr
}

type getSellerListResponse struct {
	HasMoreItems bool `xml:"HasMoreItems"`
	ItemArray    struct {
		Items []struct {
			ItemID string `xml:"ItemID"`
		} `xml:"Item"`
	} `xml:"ItemArray"`
}

type uploadPictureResponse struct {
	SiteHostedPictureDetails struct {
		FullURL string `xml:"FullURL"`
	} `xml:"SiteHostedPictureDetails"`
}
