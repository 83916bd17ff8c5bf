package nextcloud

import "encoding/xml"

// ocsEnvelope is the outer XML structure of every OCS v1 response.
// statuscode 100 means success; everything else carries a reason in message.
type ocsEnvelope struct {
	XMLName xml.Name `xml:"ocs"`
	Meta    ocsMeta  `xml:"meta"`
	Data    ocsData  `xml:"data"`
}

type ocsMeta struct {
	Status     string `xml:"status"`
	StatusCode int    `xml:"statuscode"`
	Message    string `xml:"message"`
}

// ocsData covers the union of payloads this client reads. Elements not
// present in a given response simply stay zero.
type ocsData struct {
	// Users and groups listings both come back as repeated <element> under
	// a wrapper node.
	Users struct {
		Element []string `xml:"element"`
	} `xml:"users"`
	Groups struct {
		Element []string `xml:"element"`
	} `xml:"groups"`
	// Flat listing used by the subadmins and user-groups endpoints.
	Element []string `xml:"element"`

	// User detail fields.
	ID          string `xml:"id"`
	DisplayName string `xml:"displayname"`
	Email       string `xml:"email"`
	Enabled     string `xml:"enabled"`
	Quota       struct {
		Quota string `xml:"quota"`
	} `xml:"quota"`
}

const ocsStatusOK = 100
