package engine

// Result is the outcome of an asynchronous replacement.
type Result struct {
	Text string
	Err  error
}

// ReplaceAsync runs Replace on its own goroutine. The returned
// channel receives exactly one Result and is then closed.
func (en *Engine) ReplaceAsync(template string) <-chan Result {
	ch := make(chan Result, 1)

	go func() {
		defer close(ch)

		text, err := en.Replace(template)
		ch <- Result{Text: text, Err: err}
	}()

	return ch
}
