package tags

// Namespace URLs used during parsing.
const (
	NamespaceHTML   = "http://www.w3.org/1999/xhtml"
	NamespaceSVG    = "http://www.w3.org/2000/svg"
	NamespaceMathML = "http://www.w3.org/1998/Math/MathML"
	NamespaceXLink  = "http://www.w3.org/1999/xlink"
	NamespaceXML    = "http://www.w3.org/XML/1998/namespace"
	NamespaceXMLNS  = "http://www.w3.org/2000/xmlns/"
)

// SVGTagAdjustments restores the canonical casing of SVG tag names that arrive
// lowercased from the tokenizer.
var SVGTagAdjustments = map[string]string{
	"altglyph":            "altGlyph",
	"altglyphdef":         "altGlyphDef",
	"altglyphitem":        "altGlyphItem",
	"animatecolor":        "animateColor",
	"animatemotion":       "animateMotion",
	"animatetransform":    "animateTransform",
	"clippath":            "clipPath",
	"feblend":             "feBlend",
	"fecolormatrix":       "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer",
	"fecomposite":         "feComposite",
	"feconvolvematrix":    "feConvolveMatrix",
	"fediffuselighting":   "feDiffuseLighting",
	"fedisplacementmap":   "feDisplacementMap",
	"fedistantlight":      "feDistantLight",
	"fedropshadow":        "feDropShadow",
	"feflood":             "feFlood",
	"fefunca":             "feFuncA",
	"fefuncb":             "feFuncB",
	"fefuncg":             "feFuncG",
	"fefuncr":             "feFuncR",
	"fegaussianblur":      "feGaussianBlur",
	"feimage":             "feImage",
	"femerge":             "feMerge",
	"femergenode":         "feMergeNode",
	"femorphology":        "feMorphology",
	"feoffset":            "feOffset",
	"fepointlight":        "fePointLight",
	"fespecularlighting":  "feSpecularLighting",
	"fespotlight":         "feSpotLight",
	"fetile":              "feTile",
	"feturbulence":        "feTurbulence",
	"foreignobject":       "foreignObject",
	"glyphref":            "glyphRef",
	"lineargradient":      "linearGradient",
	"radialgradient":      "radialGradient",
	"textpath":            "textPath",
}

// SVGAttrAdjustments restores the canonical casing of SVG attribute names.
var SVGAttrAdjustments = map[string]string{
	"attributename":       "attributeName",
	"attributetype":       "attributeType",
	"basefrequency":       "baseFrequency",
	"baseprofile":         "baseProfile",
	"calcmode":            "calcMode",
	"clippathunits":       "clipPathUnits",
	"diffuseconstant":     "diffuseConstant",
	"edgemode":            "edgeMode",
	"filterunits":         "filterUnits",
	"glyphref":            "glyphRef",
	"gradienttransform":   "gradientTransform",
	"gradientunits":       "gradientUnits",
	"kernelmatrix":        "kernelMatrix",
	"kernelunitlength":    "kernelUnitLength",
	"keypoints":           "keyPoints",
	"keysplines":          "keySplines",
	"keytimes":            "keyTimes",
	"lengthadjust":        "lengthAdjust",
	"limitingconeangle":   "limitingConeAngle",
	"markerheight":        "markerHeight",
	"markerunits":         "markerUnits",
	"markerwidth":         "markerWidth",
	"maskcontentunits":    "maskContentUnits",
	"maskunits":           "maskUnits",
	"numoctaves":          "numOctaves",
	"pathlength":          "pathLength",
	"patterncontentunits": "patternContentUnits",
	"patterntransform":    "patternTransform",
	"patternunits":        "patternUnits",
	"pointsatx":           "pointsAtX",
	"pointsaty":           "pointsAtY",
	"pointsatz":           "pointsAtZ",
	"preservealpha":       "preserveAlpha",
	"preserveaspectratio": "preserveAspectRatio",
	"primitiveunits":      "primitiveUnits",
	"refx":                "refX",
	"refy":                "refY",
	"repeatcount":         "repeatCount",
	"repeatdur":           "repeatDur",
	"requiredextensions":  "requiredExtensions",
	"requiredfeatures":    "requiredFeatures",
	"specularconstant":    "specularConstant",
	"specularexponent":    "specularExponent",
	"spreadmethod":        "spreadMethod",
	"startoffset":         "startOffset",
	"stddeviation":        "stdDeviation",
	"stitchtiles":         "stitchTiles",
	"surfacescale":        "surfaceScale",
	"systemlanguage":      "systemLanguage",
	"tablevalues":         "tableValues",
	"targetx":             "targetX",
	"targety":             "targetY",
	"textlength":          "textLength",
	"viewbox":             "viewBox",
	"viewtarget":          "viewTarget",
	"xchannelselector":    "xChannelSelector",
	"ychannelselector":    "yChannelSelector",
	"zoomandpan":          "zoomAndPan",
}

// MathMLAttrAdjustments restores MathML attribute casing.
var MathMLAttrAdjustments = map[string]string{
	"definitionurl": "definitionURL",
}

// NamespacedAttr describes a foreign attribute adjustment.
type NamespacedAttr struct {
	Prefix    string
	Local     string
	Namespace string
}

// ForeignAttrAdjustments maps attribute names that carry a namespace when
// they appear on foreign elements.
var ForeignAttrAdjustments = map[string]NamespacedAttr{
	"xlink:actuate": {Prefix: "xlink", Local: "actuate", Namespace: NamespaceXLink},
	"xlink:arcrole": {Prefix: "xlink", Local: "arcrole", Namespace: NamespaceXLink},
	"xlink:href":    {Prefix: "xlink", Local: "href", Namespace: NamespaceXLink},
	"xlink:role":    {Prefix: "xlink", Local: "role", Namespace: NamespaceXLink},
	"xlink:show":    {Prefix: "xlink", Local: "show", Namespace: NamespaceXLink},
	"xlink:title":   {Prefix: "xlink", Local: "title", Namespace: NamespaceXLink},
	"xlink:type":    {Prefix: "xlink", Local: "type", Namespace: NamespaceXLink},
	"xml:lang":      {Prefix: "xml", Local: "lang", Namespace: NamespaceXML},
	"xml:space":     {Prefix: "xml", Local: "space", Namespace: NamespaceXML},
	"xmlns":         {Prefix: "", Local: "xmlns", Namespace: NamespaceXMLNS},
	"xmlns:xlink":   {Prefix: "xmlns", Local: "xlink", Namespace: NamespaceXMLNS},
}

// MathMLTextIntegration are the MathML text integration points.
var MathMLTextIntegration = map[string]bool{
	"mi": true, "mo": true, "mn": true, "ms": true, "mtext": true,
}

// SVGHTMLIntegration are the SVG HTML integration points. The MathML
// annotation-xml element is also an integration point when its encoding
// attribute is text/html or application/xhtml+xml; the tree builder checks
// that case separately.
var SVGHTMLIntegration = map[string]bool{
	"foreignObject": true, "desc": true, "title": true,
}

// ForeignBreakout lists the HTML start tags that break out of foreign
// content. A font tag only breaks out when it carries a color, face, or
// size attribute.
var ForeignBreakout = map[string]bool{
	"b": true, "big": true, "blockquote": true, "body": true, "br": true,
	"center": true, "code": true, "dd": true, "div": true, "dl": true,
	"dt": true, "em": true, "embed": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "head": true,
	"hr": true, "i": true, "img": true, "li": true, "listing": true,
	"menu": true, "meta": true, "nobr": true, "ol": true, "p": true,
	"pre": true, "ruby": true, "s": true, "small": true, "span": true,
	"strong": true, "strike": true, "sub": true, "sup": true,
	"table": true, "tt": true, "u": true, "ul": true, "var": true,
}
