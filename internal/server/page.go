package server

// viewerPage draws one canvas row per plan entry and keeps every row's x
// window in one shared pan/zoom state (drag to pan, wheel to zoom, double
// click to reset). The Export button composites the rows into a PNG.
const viewerPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.File}} — EEG/ECG Explorer</title>
<style>
  body { font-family: sans-serif; margin: 0; background: #ffffff; color: #222; }
  header { padding: 10px 16px; border-bottom: 1px solid #ddd; display: flex; align-items: baseline; gap: 16px; }
  header h1 { font-size: 18px; margin: 0; }
  header .meta { color: #777; font-size: 13px; }
  header button { margin-left: auto; }
  #panels { padding: 8px 16px; }
  .row-label { font-size: 12px; color: #444; margin: 6px 0 0; }
  canvas { display: block; width: 100%; border-bottom: 1px solid #eee; }
  #readout { padding: 6px 16px; font-size: 13px; color: #555; }
</style>
</head>
<body>
<header>
  <h1>EEG/ECG Multi-Channel</h1>
  <span class="meta">{{.File}} | {{.Channels}} channels | {{.SampleRate}}Hz</span>
  <button id="reset">Reset axes</button>
  <button id="export">Export PNG</button>
</header>
<div id="panels"></div>
<div id="readout">Loading…</div>
<script>
const colors = { eeg: "#1f6fd6", ecg: "#d64545", reference: "#8a8a8a" };
let rec = null, plan = null;
let t0 = 0, t1 = 1;
const panels = [];

async function init() {
  [rec, plan] = await Promise.all([
    fetch("/api/recording").then(r => r.json()),
    fetch("/api/layout").then(r => r.json()),
  ]);
  if (rec.time.length > 0) { t0 = rec.time[0]; t1 = rec.time[rec.time.length - 1]; }
  const host = document.getElementById("panels");
  for (const row of plan.rows) {
    const ch = rec.channels.find(c => c.name === row.channel);
    if (!ch) continue;
    const label = document.createElement("div");
    label.className = "row-label";
    label.textContent = row.label;
    const canvas = document.createElement("canvas");
    canvas.height = row.height_px;
    host.appendChild(label);
    host.appendChild(canvas);
    attach(canvas);
    panels.push({ canvas, ch, row });
  }
  draw();
}

function attach(canvas) {
  let dragging = false, lastX = 0;
  canvas.addEventListener("mousedown", e => { dragging = true; lastX = e.clientX; });
  window.addEventListener("mouseup", () => { dragging = false; });
  window.addEventListener("mousemove", e => {
    if (!dragging) return;
    const dt = (e.clientX - lastX) / canvas.clientWidth * (t1 - t0);
    lastX = e.clientX;
    pan(-dt);
  });
  canvas.addEventListener("wheel", e => {
    e.preventDefault();
    const frac = (e.clientX - canvas.getBoundingClientRect().left) / canvas.clientWidth;
    zoom(e.deltaY < 0 ? 0.8 : 1.25, t0 + frac * (t1 - t0));
  }, { passive: false });
  canvas.addEventListener("dblclick", reset);
}

function fullRange() {
  const t = rec.time;
  return t.length ? [t[0], t[t.length - 1]] : [0, 1];
}

function pan(dt) {
  const [lo, hi] = fullRange();
  dt = Math.max(lo - t0, Math.min(hi - t1, dt));
  t0 += dt; t1 += dt;
  draw();
}

function zoom(factor, center) {
  const [lo, hi] = fullRange();
  t0 = Math.max(lo, center - (center - t0) * factor);
  t1 = Math.min(hi, center + (t1 - center) * factor);
  draw();
}

function reset() { [t0, t1] = fullRange(); draw(); }

function draw() {
  for (const p of panels) drawPanel(p);
  document.getElementById("readout").textContent =
    "Window: " + t0.toFixed(2) + "–" + t1.toFixed(2) + " seconds";
}

function drawPanel(p) {
  const ctx = p.canvas.getContext("2d");
  const w = p.canvas.width = p.canvas.clientWidth;
  const h = p.canvas.height;
  ctx.clearRect(0, 0, w, h);
  const time = rec.time, data = p.ch.samples;
  let i0 = time.findIndex(t => t >= t0); if (i0 < 0) i0 = 0;
  let i1 = time.length; while (i1 > i0 && time[i1 - 1] > t1) i1--;
  if (i1 - i0 < 2) return;
  let yMin = Infinity, yMax = -Infinity;
  for (let i = i0; i < i1; i++) { yMin = Math.min(yMin, data[i]); yMax = Math.max(yMax, data[i]); }
  let yr = yMax - yMin || 1; yMin -= yr * 0.1; yr *= 1.2;
  ctx.strokeStyle = colors[p.row.category] || colors.eeg;
  ctx.beginPath();
  for (let i = i0; i < i1; i++) {
    const x = (time[i] - t0) / (t1 - t0) * w;
    const y = h - (data[i] - yMin) / yr * h;
    i === i0 ? ctx.moveTo(x, y) : ctx.lineTo(x, y);
  }
  ctx.stroke();
}

function exportPNG() {
  const out = document.createElement("canvas");
  const w = panels[0] ? panels[0].canvas.width : 800;
  out.width = w;
  out.height = panels.reduce((s, p) => s + p.canvas.height, 0);
  const ctx = out.getContext("2d");
  ctx.fillStyle = "#ffffff";
  ctx.fillRect(0, 0, out.width, out.height);
  let y = 0;
  for (const p of panels) { ctx.drawImage(p.canvas, 0, y); y += p.canvas.height; }
  const a = document.createElement("a");
  a.download = "recording.png";
  a.href = out.toDataURL("image/png");
  a.click();
}

document.getElementById("reset").addEventListener("click", reset);
document.getElementById("export").addEventListener("click", exportPNG);
init();
</script>
</body>
</html>
`
