package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Home() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return writeAll(w, pageHead, "Guess My Drawing", pageStyles, `
      <header>
        <h1>Guess My Drawing</h1>
        <p>One player draws and hides the answer. Everyone else guesses.</p>
      </header>

      <section class="panel">
        <h2>Draw</h2>
        <p>Pick a room name, set a secret answer and sketch it.</p>
        <a href="/draw">Start drawing</a>
      </section>

      <section class="panel">
        <h2>Guess</h2>
        <p>Enter the room name your friend shared and take a guess.</p>
        <form action="/guess" method="get">
          <label for="room">Room</label>
          <input id="room" name="room" type="text" autocomplete="off"/>
          <button type="submit">Open room</button>
        </form>
      </section>

      <section class="panel">
        <h2>Quick play</h2>
        <p>Draw and guess on one screen. Nothing is saved.</p>
        <a href="/legacy">Play on one screen</a>
      </section>`, pageFoot)
	})
}
