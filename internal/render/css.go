package render

// CSSProvider supplies the raw CSS emitted in the document's inline style
// block. The CSS is engine-owned text; it is never escaped or transformed.
type CSSProvider interface {
	CSS() string
}

// DefaultCSS provides the built-in notification stylesheet.
type DefaultCSS struct{}

func (DefaultCSS) CSS() string { return defaultCSS }

const defaultCSS = `#msg dl { border: 1px #006 solid; background: #369; padding: 6px; color: #fff; }
#msg dt { float: left; width: 6em; font-weight: bold; }
#msg dt:after { content:':'; }
#msg dl, #msg dt, #msg ul, #msg li { font-family: verdana,arial,helvetica,sans-serif; font-size: 10pt; }
#msg dl a { font-weight: bold; }
#msg dl a:link { color: #fc3; }
#msg dl a:active { color: #ff0; }
#msg dl a:visited { color: #cc6; }
#msg h3 { font-family: verdana,arial,helvetica,sans-serif; font-size: 10pt; font-weight: bold; }
#msg pre, #logmsg { overflow: auto; background: #ffc; border: 1px #fa0 solid; padding: 6px; }
#logmsg p, #logmsg li { font-family: verdana,arial,helvetica,sans-serif; font-size: 10pt; }
#msg ul { overflow: auto; }
#header, #footer { color: #fff; background: #636; border: 1px #300 solid; padding: 6px; }
#patch { width: 100%; }
`

const colorDiffCSS = `#patch .file { font-family: verdana,arial,helvetica,sans-serif; font-size: 10pt; font-weight: bold; }
#patch .add { background: #dfd; }
#patch .rem { background: #fdd; }
#patch .lines { color: #888; }
`
