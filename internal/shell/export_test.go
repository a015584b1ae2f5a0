package shell

var AppendSnippet = appendSnippet
