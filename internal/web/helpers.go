package web

import (
	"io"
	"strconv"

	"github.com/a-h/templ"
)

func itoa(value int) string {
	return strconv.Itoa(value)
}

// writeAll writes parts in order, escaping nothing; callers escape values
// with templ.EscapeString.
func writeAll(w io.Writer, parts ...string) error {
	for _, part := range parts {
		if _, err := io.WriteString(w, part); err != nil {
			return err
		}
	}
	return nil
}

func esc(value string) string {
	return templ.EscapeString(value)
}

const pageHead = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>`

const pageStyles = `</title>
    <style>
      body { font-family: system-ui, sans-serif; margin: 0; background: #fffaf0; color: #1a1a1a; }
      .shell { max-width: 720px; margin: 0 auto; padding: 24px; }
      .panel { background: #fff; border-radius: 12px; padding: 16px 20px; margin: 16px 0; box-shadow: 0 1px 4px rgba(0,0,0,.08); }
      label { display: block; margin: 8px 0 4px; font-weight: 600; }
      input[type=text], input[type=password] { width: 100%; padding: 8px; box-sizing: border-box; }
      button { margin-top: 12px; padding: 8px 16px; border: 0; border-radius: 8px; background: #ffa94d; cursor: pointer; }
      canvas { border: 1px solid #ccc; background: #fff; touch-action: none; }
      .result { margin-top: 12px; min-height: 1.4em; }
      .ok { color: #2b8a3e; } .err { color: #c92a2a; }
      code { word-break: break-all; }
    </style>
  </head>
  <body>
    <main class="shell">
`

const pageFoot = `
    </main>
  </body>
</html>`

// canvasScript wires a freehand canvas with id "canvas" and exposes
// captureCanvas(), which returns {width, height, pixels} with base64 RGBA.
const canvasScript = `
<script>
(function () {
  const canvas = document.getElementById("canvas");
  if (!canvas) { return; }
  const ctx = canvas.getContext("2d");
  ctx.fillStyle = "#FFFFFF";
  ctx.fillRect(0, 0, canvas.width, canvas.height);
  ctx.lineWidth = 5;
  ctx.lineCap = "round";
  ctx.strokeStyle = "#000000";
  let drawing = false;
  function point(e) {
    const rect = canvas.getBoundingClientRect();
    return { x: e.clientX - rect.left, y: e.clientY - rect.top };
  }
  canvas.addEventListener("pointerdown", function (e) {
    drawing = true;
    const p = point(e);
    ctx.beginPath();
    ctx.moveTo(p.x, p.y);
  });
  canvas.addEventListener("pointermove", function (e) {
    if (!drawing) { return; }
    const p = point(e);
    ctx.lineTo(p.x, p.y);
    ctx.stroke();
  });
  ["pointerup", "pointerleave"].forEach(function (name) {
    canvas.addEventListener(name, function () { drawing = false; });
  });
  window.clearCanvas = function () {
    ctx.fillStyle = "#FFFFFF";
    ctx.fillRect(0, 0, canvas.width, canvas.height);
  };
  window.captureCanvas = function () {
    const data = ctx.getImageData(0, 0, canvas.width, canvas.height).data;
    let binary = "";
    const chunk = 0x8000;
    for (let i = 0; i < data.length; i += chunk) {
      binary += String.fromCharCode.apply(null, data.subarray(i, i + chunk));
    }
    return { width: canvas.width, height: canvas.height, pixels: btoa(binary) };
  };
})();
</script>`

const postJSONScript = `
<script>
async function postJSON(url, payload) {
  const resp = await fetch(url, {
    method: "POST",
    headers: { "Content-Type": "application/json" },
    body: JSON.stringify(payload),
  });
  const body = await resp.json().catch(function () { return {}; });
  return { ok: resp.ok, body: body };
}
function showResult(el, ok, text) {
  el.className = "result " + (ok ? "ok" : "err");
  el.textContent = text;
}
</script>`
