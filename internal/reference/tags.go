package reference

import "strings"

var htmlTags = set(
	"a", "abbr", "address", "area", "article", "aside", "audio",
	"b", "base", "bdi", "bdo", "blockquote", "body", "br", "button",
	"canvas", "caption", "cite", "code", "col", "colgroup",
	"data", "datalist", "dd", "del", "details", "dfn", "dialog", "div", "dl", "dt",
	"em", "embed",
	"fieldset", "figcaption", "figure", "footer", "form",
	"h1", "h2", "h3", "h4", "h5", "h6", "head", "header", "hgroup", "hr", "html",
	"i", "iframe", "img", "input", "ins",
	"kbd",
	"label", "legend", "li", "link",
	"main", "map", "mark", "math", "menu", "meta", "meter",
	"nav", "noscript",
	"object", "ol", "optgroup", "option", "output",
	"p", "picture", "pre", "progress",
	"q",
	"rp", "rt", "ruby",
	"s", "samp", "script", "search", "section", "select", "selectedcontent", "slot", "small", "source",
	"span", "strong", "style", "sub", "summary", "sup", "svg",
	"table", "tbody", "td", "template", "textarea", "tfoot", "th", "thead", "time", "title", "tr", "track",
	"u", "ul",
	"var", "video",
	"wbr",

	// obsolete but still matched by browsers
	"acronym", "applet", "basefont", "bgsound", "big", "blink", "center", "command", "content",
	"dir", "element", "font", "frame", "frameset", "image", "isindex", "keygen", "listing",
	"marquee", "menuitem", "multicol", "nextid", "nobr", "noembed", "noframes", "plaintext",
	"rb", "rtc", "shadow", "spacer", "strike", "tt", "xmp",
)

// SVG element names are case sensitive
var svgTags = set(
	"a", "altGlyph", "altGlyphDef", "altGlyphItem", "animate", "animateColor", "animateMotion",
	"animateTransform", "animation", "audio", "canvas", "circle", "clipPath", "color-profile",
	"cursor", "defs", "desc", "discard", "ellipse",
	"feBlend", "feColorMatrix", "feComponentTransfer", "feComposite", "feConvolveMatrix",
	"feDiffuseLighting", "feDisplacementMap", "feDistantLight", "feDropShadow", "feFlood",
	"feFuncA", "feFuncB", "feFuncG", "feFuncR", "feGaussianBlur", "feImage", "feMerge",
	"feMergeNode", "feMorphology", "feOffset", "fePointLight", "feSpecularLighting",
	"feSpotLight", "feTile", "feTurbulence", "filter", "font", "font-face", "font-face-format",
	"font-face-name", "font-face-src", "font-face-uri", "foreignObject", "g", "glyph", "glyphRef",
	"handler", "hatch", "hatchpath", "hatchPath", "hkern", "iframe", "image", "line", "linearGradient",
	"listener", "marker", "mask", "mesh", "meshgradient", "meshpatch", "meshrow", "metadata",
	"missing-glyph", "mpath", "path", "pattern", "polygon", "polyline", "prefetch",
	"radialGradient", "rect", "script", "set", "solidColor", "solidcolor", "stop", "style",
	"svg", "switch", "symbol", "tbreak", "text", "textArea", "textPath", "title", "tref",
	"tspan", "unknown", "use", "video", "view", "vkern",
)

var mathMLTags = set(
	"annotation", "annotation-xml", "maction", "maligngroup", "malignmark", "math",
	"menclose", "merror", "mfenced", "mfrac", "mglyph", "mi", "mlabeledtr", "mlongdiv",
	"mmultiscripts", "mn", "mo", "mover", "mpadded", "mphantom", "mprescripts", "mroot",
	"mrow", "ms", "mscarries", "mscarry", "msgroup", "msline", "mspace", "msqrt", "msrow",
	"mstack", "mstyle", "msub", "msubsup", "msup", "mtable", "mtd", "mtext", "mtr",
	"munder", "munderover", "none", "semantics",
)

// IsHTMLTag reports whether name is an HTML element, ignoring case
func IsHTMLTag(name string) bool { return htmlTags[strings.ToLower(name)] }

// IsSVGTag reports whether name is an SVG element. The match is case sensitive.
func IsSVGTag(name string) bool { return svgTags[name] }

// IsMathMLTag reports whether name is a MathML element, ignoring case
func IsMathMLTag(name string) bool { return mathMLTags[strings.ToLower(name)] }

// IsKnownTag reports whether name is any HTML, SVG or MathML element
func IsKnownTag(name string) bool {
	return IsHTMLTag(name) || IsSVGTag(name) || IsMathMLTag(name)
}
