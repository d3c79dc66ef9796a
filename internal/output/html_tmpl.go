package output

const htmlTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}" data-theme="{{.Theme}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{index .L "title"}}</title>
<style>
:root {
  --bg: #fff; --fg: #1a1a2e; --card-bg: #f8f9fa; --border: #dee2e6;
  --table-alt: #f1f3f5; --hover: #e9ecef; --muted: #6c757d;
  --critical: #dc3545; --high: #fd7e14; --normal: #ffc107; --low: #0dcaf0; --info: #6c757d;
  --accent: #0d6efd; --ok: #28a745;
}
[data-theme=dark] {
  --bg: #1a1a2e; --fg: #e9ecef; --card-bg: #16213e; --border: #495057;
  --table-alt: #0f3460; --hover: #1a1a4e; --muted: #adb5bd;
  --critical: #f55; --high: #fd7e14; --normal: #ffc107; --low: #5bc0de; --info: #adb5bd;
  --accent: #5b9aff; --ok: #4caf50;
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; padding: 1rem; max-width: 1400px; margin: 0 auto; }
header { display: flex; flex-wrap: wrap; justify-content: space-between; align-items: baseline; gap: .5rem; margin-bottom: 1rem; }
header h1 { font-size: 1.5rem; }
header p { color: var(--muted); font-size: .875rem; }
button, .btn { padding: .375rem .625rem; border: 1px solid var(--border); border-radius: 4px; background: var(--card-bg); color: var(--fg); font-size: .8125rem; cursor: pointer; text-decoration: none; }
button:hover, .btn:hover { border-color: var(--accent); }
.cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(120px, 1fr)); gap: .75rem; margin-bottom: 1rem; }
.card { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: .75rem; text-align: center; }
.card label { cursor: pointer; display: block; }
.card .value { font-size: 1.5rem; font-weight: 700; }
.card .label { font-size: .75rem; color: var(--muted); text-transform: uppercase; }
.sev-critical { color: var(--critical); } .sev-high { color: var(--high); } .sev-normal { color: var(--normal); }
.sev-low { color: var(--low); } .sev-info { color: var(--info); }
.progress { height: 6px; background: var(--border); border-radius: 3px; overflow: hidden; }
.progress > div { height: 100%; background: var(--ok); }
.layout { display: grid; grid-template-columns: 280px 1fr; gap: 1rem; }
@media (max-width: 900px) { .layout { grid-template-columns: 1fr; } }
aside .file { display: block; padding: .375rem .5rem; border: 1px solid var(--border); border-radius: 6px; margin-bottom: .375rem; background: var(--card-bg); cursor: pointer; font-size: .8125rem; }
aside .file.active { border-color: var(--accent); }
aside .file.complete .name { text-decoration: line-through; color: var(--muted); }
aside .file .meta { display: flex; justify-content: space-between; color: var(--muted); font-size: .75rem; }
.filters { display: flex; flex-wrap: wrap; gap: .5rem; margin-bottom: 1rem; align-items: center; }
.filters input[type=text] { padding: .375rem .5rem; border: 1px solid var(--border); border-radius: 4px; background: var(--card-bg); color: var(--fg); min-width: 220px; }
table { width: 100%; border-collapse: collapse; font-size: .8125rem; }
thead { position: sticky; top: 0; background: var(--card-bg); }
th, td { padding: .5rem .625rem; text-align: left; border-bottom: 1px solid var(--border); vertical-align: top; }
th[data-col] { cursor: pointer; user-select: none; white-space: nowrap; }
th[data-col]:hover { color: var(--accent); }
tr:nth-child(even) { background: var(--table-alt); }
tr:hover { background: var(--hover); }
tr.done td.msg { text-decoration: line-through; color: var(--muted); }
td .links a { font-size: .6875rem; margin-right: .375rem; color: var(--accent); }
.hidden { display: none; }
.empty { padding: 2rem; text-align: center; color: var(--muted); }
#toast { position: fixed; bottom: 1rem; right: 1rem; padding: .5rem .75rem; border-radius: 6px; background: var(--fg); color: var(--bg); opacity: 0; transition: opacity .2s; }
#toast.show { opacity: .9; }
</style>
</head>
<body>
<header>
  <div>
    <h1>{{index .L "title"}}</h1>
    <p>{{.Summary}}{{if .Source}} &middot; {{.Source}}{{end}} &middot; {{.GeneratedAt}}</p>
  </div>
  <div>
    {{if .Interactive}}
    <label class="btn">{{index .L "import"}}<input type="file" id="import-file" class="hidden" accept=".json,.xml"></label>
    <button onclick="post('/api/demo')">{{index .L "demo"}}</button>
    {{end}}
    <button onclick="exportState()">{{index .L "export"}}</button>
    <button onclick="resetState()">{{index .L "reset_button"}}</button>
    <button onclick="toggleTheme()">{{index .L "toggle_theme"}}</button>
    {{if .Interactive}}<button onclick="post('/api/lang')">{{index .L "toggle_lang"}}</button>{{end}}
  </div>
</header>

<section class="cards" id="summary">
  <div class="card"><div class="value" id="progress-label">{{.Progress}}</div>
    <div class="progress"><div id="progress-bar" style="width: {{.Percent}}%"></div></div></div>
  {{range .Severities}}
  <div class="card"><label>
    <input type="checkbox" class="sev-filter" value="{{.Level}}"{{if .Checked}} checked{{end}}>
    <div class="value sev-{{.Level}}">{{.Count}}{{if ne .Count .Total}}<small>/{{.Total}}</small>{{end}}</div>
    <div class="label">{{.Label}}</div>
  </label></div>
  {{end}}
</section>

<div class="layout">
<aside id="files">
  <h3>{{index .L "files"}}</h3>
  <button id="clear-file"{{if not .ActiveFile}} class="hidden"{{end}} onclick="selectFile('')">{{index .L "clear_filter"}}</button>
  {{range .Files}}
  <div class="file{{if .Active}} active{{end}}{{if .Complete}} complete{{end}}" data-file="{{.File}}" title="{{.File}}" onclick="selectFile(this.dataset.file)">
    <div class="name">{{.ShortFile}}</div>
    <div class="meta"><span>{{.Done}}/{{.Total}}</span><span>{{.Percent}}%</span></div>
    <div class="progress"><div style="width: {{.Percent}}%"></div></div>
  </div>
  {{end}}
</aside>

<main>
<section class="filters">
  <input type="text" id="filter-search" placeholder="{{index .L "search"}}" value="{{.Query}}">
  <label><input type="checkbox" id="filter-open"{{if .OnlyOpen}} checked{{end}}> {{index .L "only_open"}}</label>
</section>

<table>
<thead><tr>
  <th>{{index .L "col_done"}}</th>
  {{range .Columns}}<th data-col="{{.Key}}">{{.Label}}</th>{{end}}
</tr></thead>
<tbody>
{{range .Rows}}
<tr class="issue-row{{if .Done}} done{{end}}" data-id="{{.ID}}" data-severity="{{.Level}}" data-file="{{.File}}" data-line="{{.Line}}">
  <td><input type="checkbox" class="done-box" title="{{.Short}}"{{if .Done}} checked{{end}}></td>
  <td class="sev-{{.Level}}">{{.Label}}</td>
  <td>{{.Type}}</td>
  <td title="{{.File}}">{{.ShortFile}}<div class="links">{{range .Links}}<a href="{{.URL}}">{{.Name}}</a>{{end}}</div></td>
  <td>{{.Line}}</td>
  <td class="msg">{{.Message}}</td>
</tr>
{{end}}
</tbody>
</table>
<div id="empty" class="empty{{if .Rows}} hidden{{end}}">{{index .L "no_issues"}}</div>
</main>
</div>
<div id="toast"></div>

<script>
var interactive = {{json .Interactive}};
var labels = {{json .L}};
var state = {
  activeFile: {{json .ActiveFile}},
  sortKey: {{json .SortKey}},
  sortDesc: {{json .SortDesc}}
};
var storeKey = "triage-completion";

function toast(msg) {
  var t = document.getElementById("toast");
  t.textContent = msg; t.classList.add("show");
  setTimeout(function(){ t.classList.remove("show"); }, 2500);
}

function post(path, body) {
  return fetch(path, {method: "POST", headers: {"Content-Type": "application/json"}, body: JSON.stringify(body || {})})
    .then(function(r){ return r.json().then(function(j){ if (!r.ok) throw new Error(j.error || r.statusText); return j; }); })
    .then(function(){ location.reload(); })
    .catch(function(e){ toast(e.message); });
}

function loadLocal() { try { return JSON.parse(localStorage.getItem(storeKey)) || {}; } catch (e) { return {}; } }
function saveLocal(c) { try { localStorage.setItem(storeKey, JSON.stringify(c)); } catch (e) {} }

function rows() { return Array.prototype.slice.call(document.querySelectorAll("tr.issue-row")); }

function applyFilters() {
  if (interactive) return;
  var sev = {};
  document.querySelectorAll(".sev-filter").forEach(function(c){ sev[c.value] = c.checked; });
  var q = document.getElementById("filter-search").value.toLowerCase();
  var open = document.getElementById("filter-open").checked;
  var shown = 0, done = 0;
  rows().forEach(function(r){
    var isDone = r.querySelector(".done-box").checked;
    var text = (r.children[5].textContent + r.children[2].textContent + r.dataset.file).toLowerCase();
    var show = sev[r.dataset.severity] &&
      (!state.activeFile || r.dataset.file === state.activeFile) &&
      (!q || text.indexOf(q) !== -1) &&
      (!open || !isDone);
    r.classList.toggle("hidden", !show);
    r.classList.toggle("done", isDone);
    if (show) shown++;
    if (isDone) done++;
  });
  document.getElementById("empty").classList.toggle("hidden", shown > 0);
  var total = rows().length;
  document.getElementById("progress-bar").style.width = (total ? Math.floor(done * 100 / total) : 0) + "%";
  document.querySelectorAll("#files .file").forEach(function(f){ f.classList.toggle("active", f.dataset.file === state.activeFile); });
  document.getElementById("clear-file").classList.toggle("hidden", !state.activeFile);
}

function selectFile(file) {
  if (interactive) { post("/api/file", {file: file}); return; }
  state.activeFile = (state.activeFile === file) ? "" : file;
  applyFilters();
}

function exportState() {
  if (interactive) { location.href = "/api/export"; return; }
  var blob = new Blob([JSON.stringify(loadLocal(), null, 2)], {type: "application/json"});
  var url = URL.createObjectURL(blob);
  var a = document.createElement("a"); a.href = url; a.download = "triage-state.json"; a.click();
  URL.revokeObjectURL(url);
}

function resetState() {
  if (!confirm(labels.reset_confirm)) return;
  if (interactive) { post("/api/reset"); return; }
  saveLocal({});
  document.querySelectorAll(".done-box").forEach(function(b){ b.checked = false; });
  applyFilters();
}

function toggleTheme() {
  if (interactive) { post("/api/theme"); return; }
  var root = document.documentElement;
  root.dataset.theme = root.dataset.theme === "dark" ? "light" : "dark";
}

document.querySelectorAll(".done-box").forEach(function(box){
  box.addEventListener("change", function(){
    var id = box.closest("tr").dataset.id;
    if (interactive) { post("/api/done", {id: id, done: box.checked}); return; }
    var c = loadLocal(); c[id] = box.checked; saveLocal(c);
    applyFilters();
  });
});

document.querySelectorAll(".sev-filter").forEach(function(c){
  c.addEventListener("change", function(){
    if (!interactive) { applyFilters(); return; }
    var sel = [];
    document.querySelectorAll(".sev-filter").forEach(function(x){ if (x.checked) sel.push(x.value); });
    post("/api/filter", {severities: sel});
  });
});

var searchTimer;
document.getElementById("filter-search").addEventListener("input", function(e){
  if (!interactive) { applyFilters(); return; }
  clearTimeout(searchTimer);
  searchTimer = setTimeout(function(){ post("/api/filter", {query: e.target.value}); }, 400);
});

document.getElementById("filter-open").addEventListener("change", function(e){
  if (!interactive) { applyFilters(); return; }
  post("/api/filter", {only_incomplete: e.target.checked});
});

var importFile = document.getElementById("import-file");
if (importFile) {
  importFile.addEventListener("change", function(){
    var f = importFile.files[0]; if (!f) return;
    f.text().then(function(txt){
      return fetch("/api/import", {method: "POST", body: txt});
    }).then(function(r){ return r.json().then(function(j){ if (!r.ok) throw new Error(j.error); location.reload(); }); })
      .catch(function(e){ toast(e.message); });
  });
}

document.querySelectorAll("th[data-col]").forEach(function(th){
  th.addEventListener("click", function(){
    var col = th.dataset.col;
    if (interactive) { post("/api/sort", {key: col}); return; }
    if (state.sortKey === col) state.sortDesc = !state.sortDesc; else { state.sortKey = col; state.sortDesc = false; }
    var rank = {critical: 0, high: 1, normal: 2, low: 3, info: 4};
    var ci = Array.prototype.indexOf.call(th.parentNode.children, th);
    var tbody = document.querySelector("tbody");
    var list = rows();
    list.sort(function(a, b){
      var c;
      if (col === "severity") c = rank[a.dataset.severity] - rank[b.dataset.severity];
      else if (col === "line") c = Number(a.dataset.line) - Number(b.dataset.line);
      else c = a.children[ci].textContent.localeCompare(b.children[ci].textContent);
      return state.sortDesc ? -c : c;
    });
    list.forEach(function(r){ tbody.appendChild(r); });
  });
});

if (!interactive) {
  var saved = loadLocal();
  rows().forEach(function(r){ if (saved[r.dataset.id] !== undefined) r.querySelector(".done-box").checked = !!saved[r.dataset.id]; });
  applyFilters();
}
</script>
</body>
</html>`
