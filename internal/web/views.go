package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// DrawView collects a room id, a masked answer and the canvas pixels.
func DrawView(page DrawPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return writeAll(w, pageHead, "Draw | Guess My Drawing", pageStyles, `
      <h1>Start drawing</h1>
      <form id="drawForm" class="panel" data-preview="`, itoa(page.PreviewChars), `">
        <label for="roomId">Room</label>
        <input id="roomId" name="room_id" type="text" autocomplete="off" maxlength="`, itoa(page.MaxRoomIDLength), `" value="`, esc(page.RoomID), `" required/>
        <button type="button" id="suggest">Suggest a room name</button>
        <label for="answer">Secret answer (drawer only)</label>
        <input id="answer" name="answer" type="password" autocomplete="off"/>
        <label>Drawing</label>
        <canvas id="canvas" width="400" height="400"></canvas>
        <div>
          <button type="button" onclick="clearCanvas()">Clear</button>
          <button type="submit">Save drawing</button>
        </div>
        <div id="drawResult" class="result"></div>
        <p>Stored as: <code id="preview"></code></p>
      </form>
      <p><a href="/">Home</a></p>`, canvasScript, postJSONScript, `
<script>
document.getElementById("suggest").addEventListener("click", async function () {
  const resp = await fetch("/api/rooms/suggest");
  const body = await resp.json();
  if (body.room_id) { document.getElementById("roomId").value = body.room_id; }
});
document.getElementById("drawForm").addEventListener("submit", async function (e) {
  e.preventDefault();
  const result = document.getElementById("drawResult");
  const capture = captureCanvas();
  const roomId = document.getElementById("roomId").value;
  const res = await postJSON("/api/rooms", {
    room_id: roomId,
    answer: document.getElementById("answer").value,
    width: capture.width,
    height: capture.height,
    pixels: capture.pixels,
  });
  if (!res.ok) {
    showResult(result, false, res.body.error || "Saving failed.");
    return;
  }
  document.getElementById("preview").textContent = res.body.preview + "...";
  showResult(result, true, "Saved! Share the room name: " + res.body.room_id);
});
</script>`, pageFoot)
	})
}

// GuessView shows a room's drawing and takes guesses and ratings.
func GuessView(page GuessPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return writeAll(w, pageHead, "Guess | Guess My Drawing", pageStyles, `
      <h1>What do you think this is?</h1>
      <form id="roomForm" class="panel">
        <label for="roomId">Room</label>
        <input id="roomId" name="room" type="text" autocomplete="off" maxlength="`, itoa(page.MaxRoomIDLength), `" value="`, esc(page.RoomID), `"/>
        <button type="submit">Load drawing</button>
        <div id="drawingArea" class="result"></div>
        <p id="stats"></p>
      </form>
      <form id="guessForm" class="panel">
        <label for="guesser">Your name</label>
        <input id="guesser" name="guesser" type="text" autocomplete="off" maxlength="20" value="`, esc(page.GuesserName), `"/>
        <label for="guess">Your guess</label>
        <input id="guess" name="guess" type="text" autocomplete="off" maxlength="60"/>
        <button type="submit">Guess</button>
        <div id="guessResult" class="result"></div>
      </form>
      <form id="rateForm" class="panel">
        <h2>Rate this drawing</h2>
        <label for="rater">Your name</label>
        <input id="rater" name="rater" type="text" autocomplete="off" maxlength="20" value="`, esc(page.GuesserName), `"/>
        <label for="cuteness">Cuteness</label>
        <input id="cuteness" type="range" min="1" max="10" value="5"/>
        <label for="creativity">Creativity</label>
        <input id="creativity" type="range" min="1" max="10" value="5"/>
        <label for="resemblance">Resemblance</label>
        <input id="resemblance" type="range" min="1" max="10" value="5"/>
        <button type="submit">Submit rating</button>
        <div id="rateResult" class="result"></div>
      </form>
      <p><a href="/">Home</a></p>`, postJSONScript, `
<script>
function currentRoom() {
  return encodeURIComponent(document.getElementById("roomId").value.trim());
}
async function loadRoom() {
  const area = document.getElementById("drawingArea");
  const room = currentRoom();
  area.textContent = "";
  if (!room) { return; }
  const resp = await fetch("/api/rooms/" + room + "/drawing");
  const body = await resp.json().catch(function () { return {}; });
  if (!resp.ok) {
    showResult(area, false, body.error || "Could not load the room.");
    return;
  }
  if (!body.available) {
    showResult(area, false, body.message || "No image available.");
  } else {
    const img = document.createElement("img");
    img.src = body.image_data;
    img.alt = "Drawing";
    img.width = body.width;
    area.className = "result";
    area.appendChild(img);
  }
  const stats = await fetch("/api/rooms/" + room + "/guesses").then(function (r) { return r.json(); }).catch(function () { return {}; });
  if (stats.attempts !== undefined) {
    const solvers = (stats.solved_by || []).join(", ");
    document.getElementById("stats").textContent = stats.attempts + " guesses so far" + (solvers ? ". Solved by " + solvers : "");
  }
}
document.getElementById("roomForm").addEventListener("submit", function (e) {
  e.preventDefault();
  loadRoom();
});
document.getElementById("guessForm").addEventListener("submit", async function (e) {
  e.preventDefault();
  const result = document.getElementById("guessResult");
  const room = currentRoom();
  if (!room) { showResult(result, false, "Enter a room first."); return; }
  const res = await postJSON("/api/rooms/" + room + "/guesses", {
    guesser: document.getElementById("guesser").value,
    guess: document.getElementById("guess").value,
  });
  if (!res.ok) { showResult(result, false, res.body.error || "Guess failed."); return; }
  showResult(result, res.body.correct, res.body.message);
});
document.getElementById("rateForm").addEventListener("submit", async function (e) {
  e.preventDefault();
  const result = document.getElementById("rateResult");
  const room = currentRoom();
  if (!room) { showResult(result, false, "Enter a room first."); return; }
  const raterField = document.getElementById("rater");
  if (!raterField.value.trim()) {
    raterField.value = document.getElementById("guesser").value;
  }
  if (!raterField.value.trim()) {
    showResult(result, false, "Enter your name to rate.");
    raterField.focus();
    return;
  }
  const res = await postJSON("/api/rooms/" + room + "/ratings", {
    rater: raterField.value,
    cuteness: Number(document.getElementById("cuteness").value),
    creativity: Number(document.getElementById("creativity").value),
    resemblance: Number(document.getElementById("resemblance").value),
  });
  showResult(result, res.ok, res.ok ? res.body.message : (res.body.error || "Rating failed."));
});
loadRoom();
</script>`, pageFoot)
	})
}

// LegacyView is the single-screen game: the answer never leaves the page
// except for the stateless check call.
func LegacyView() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return writeAll(w, pageHead, "Quick play | Guess My Drawing", pageStyles, `
      <h1>Guess My Drawing</h1>
      <section class="panel">
        <label for="answer">Secret answer (drawer only)</label>
        <input id="answer" type="password" autocomplete="off"/>
        <label>Start drawing</label>
        <canvas id="canvas" width="400" height="400"></canvas>
        <div><button type="button" onclick="clearCanvas()">Clear</button></div>
      </section>
      <form id="guessForm" class="panel">
        <label for="guess">What do you think this is?</label>
        <input id="guess" type="text" autocomplete="off" maxlength="60"/>
        <button type="submit">Guess</button>
        <div id="guessResult" class="result"></div>
      </form>
      <form id="rateForm" class="panel">
        <h2>Rate this drawing</h2>
        <label for="cuteness">Cuteness</label>
        <input id="cuteness" type="range" min="1" max="10" value="5"/>
        <label for="creativity">Creativity</label>
        <input id="creativity" type="range" min="1" max="10" value="5"/>
        <label for="resemblance">Resemblance</label>
        <input id="resemblance" type="range" min="1" max="10" value="5"/>
        <button type="submit">Submit rating</button>
        <div id="rateResult" class="result"></div>
      </form>
      <p><a href="/">Home</a></p>`, canvasScript, postJSONScript, `
<script>
document.getElementById("guessForm").addEventListener("submit", async function (e) {
  e.preventDefault();
  const result = document.getElementById("guessResult");
  const res = await postJSON("/api/legacy/check", {
    answer: document.getElementById("answer").value,
    guess: document.getElementById("guess").value,
  });
  if (!res.ok) { showResult(result, false, res.body.error || "Guess failed."); return; }
  showResult(result, res.body.correct, res.body.message);
});
document.getElementById("rateForm").addEventListener("submit", async function (e) {
  e.preventDefault();
  const res = await postJSON("/api/legacy/ratings", {
    cuteness: Number(document.getElementById("cuteness").value),
    creativity: Number(document.getElementById("creativity").value),
    resemblance: Number(document.getElementById("resemblance").value),
  });
  showResult(document.getElementById("rateResult"), res.ok, res.ok ? res.body.message : (res.body.error || "Rating failed."));
});
</script>`, pageFoot)
	})
}
