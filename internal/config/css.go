package config

// Stock stylesheet blocks. base carries the document typography; header and
// footer carry the print layout rules. Users override any block by name or
// add their own, and later blocks win through the normal CSS cascade.

const baseCSS = `body {
  font-family: 'Arial', sans-serif;
  line-height: 1.6;
  color: #333;
  font-size: 11pt;
}
h1 { font-size: 24pt; color: #000; }
h2 { font-size: 18pt; color: #222; }
h3 { font-size: 14pt; color: #444; }
p { margin: 0 0 10px 0; }
ul, ol { margin: 0 0 10px 20px; padding: 0; }
li { margin: 0 0 5px 0; }
a { color: #0066cc; text-decoration: none; }
code { font-family: 'Courier New', monospace; background: #f5f5f5; padding: 2px 4px; }
pre { background: #f5f5f5; padding: 10px; border-radius: 3px; overflow: auto; }
blockquote { border-left: 4px solid #ddd; padding-left: 15px; color: #666; }
table { border-collapse: collapse; width: 100%; margin-bottom: 20px; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #f2f2f2; }
nav.toc { margin-bottom: 20px; }
nav.toc ul { list-style: none; margin-left: 0; }
nav.toc li { margin: 0 0 3px 0; }
`

const headerCSS = `header {
  padding-bottom: 10mm;
  border-bottom: 1px solid #eee;
  margin-bottom: 10mm;
}
`

const footerCSS = `footer {
  text-align: center;
  font-size: 8pt;
  color: #666;
  border-top: 1px solid #eee;
}
`
