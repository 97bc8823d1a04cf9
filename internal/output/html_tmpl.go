package output

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
:root {
  --bg: #fff; --fg: #1a1a2e; --card-bg: #f8f9fa; --border: #dee2e6;
  --table-alt: #f1f3f5; --hover: #e9ecef; --muted: #6c757d;
  --pending: #28a745; --completed: #dc3545; --accent: #0d6efd;
}
@media (prefers-color-scheme: dark) {
  :root {
    --bg: #1a1a2e; --fg: #e9ecef; --card-bg: #16213e; --border: #495057;
    --table-alt: #0f3460; --hover: #1a1a4e; --muted: #adb5bd;
    --accent: #5b9aff;
  }
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; padding: 1rem; max-width: 1400px; margin: 0 auto; }
header { margin-bottom: 1.5rem; }
header h1 { font-size: 1.5rem; margin-bottom: .25rem; }
header p { color: var(--muted); font-size: .875rem; }
h2 { font-size: 1rem; margin-bottom: .5rem; }
.cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(140px, 1fr)); gap: .75rem; margin-bottom: 1.5rem; }
.card { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: .75rem; text-align: center; }
.card .value { font-size: 1.5rem; font-weight: 700; }
.card .label { font-size: .75rem; color: var(--muted); text-transform: uppercase; }
.charts { display: grid; grid-template-columns: repeat(2, 1fr); gap: 1rem; margin-bottom: 1.5rem; }
@media (max-width: 768px) { .charts { grid-template-columns: 1fr; } }
.chart-box { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; }
.chart-box h3 { font-size: .875rem; margin-bottom: .5rem; }
.empty { color: var(--muted); font-size: .875rem; }
table { width: 100%; border-collapse: collapse; font-size: .8125rem; }
thead { position: sticky; top: 0; background: var(--card-bg); }
th, td { padding: .5rem .625rem; text-align: left; border-bottom: 1px solid var(--border); }
td.num, th.num { text-align: right; }
#details th { cursor: pointer; user-select: none; white-space: nowrap; }
#details th:hover { color: var(--accent); }
tr:nth-child(even) { background: var(--table-alt); }
tr:hover { background: var(--hover); }
.done-Yes { color: var(--completed); font-weight: 700; }
.done-No { color: var(--pending); font-weight: 700; }
.sort-arrow { font-size: .625rem; margin-left: .25rem; }
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <p>{{if .GeneratedAt}}Generated {{.GeneratedAt}}{{end}}{{if .Sources}} &middot; {{.Sources}}{{end}}</p>
</header>

<section class="cards" id="tiles">
{{range .Tiles}}  <div class="card" data-key="{{.Key}}"><div class="value">{{.Value}}</div><div class="label">{{.Label}}</div></div>
{{end}}</section>

<section class="charts">
  <div class="chart-box" id="summary">
    <h3>Points per Day</h3>
    <table>
    <thead><tr><th>Basis</th><th class="num">Pending Points</th><th class="num">Points per Day</th><th class="num">Points per Person per Day</th></tr></thead>
    <tbody>
{{range .Summary}}    <tr><td>{{.Basis}}</td><td class="num">{{.PendingPoints}}</td><td class="num">{{.PointsPerDay}}</td><td class="num">{{.PointsPerPersonPerDay}}</td></tr>
{{end}}    </tbody>
    </table>
  </div>
  <div class="chart-box">
    <h3>{{.PieTitle}}</h3>
    <div id="chart-pie"></div>
    <noscript><ul id="pie-legend">
{{range .Slices}}      <li data-color="{{.Color}}" title="{{.Hover}}">{{.Label}}: {{.Value}}</li>
{{end}}    </ul></noscript>
  </div>
</section>

<section id="details">
<h2>Details</h2>
{{if .Details}}<table>
<thead><tr>
  <th data-col="city">City</th>
  <th data-col="points" class="num">Points</th>
  <th data-col="completed">Completed</th>
</tr></thead>
<tbody>
{{range .Details}}<tr><td>{{.City}}</td><td class="num">{{.Points}}</td><td class="done-{{.Completed}}">{{.Completed}}</td></tr>
{{end}}</tbody>
</table>{{else}}<p class="empty">No checklist items found.</p>{{end}}
</section>

<script>
var chartData = {{json .ChartData}};

function svgEl(tag, attrs) {
  var el = document.createElementNS("http://www.w3.org/2000/svg", tag);
  for (var k in attrs) el.setAttribute(k, attrs[k]);
  return el;
}

function renderPie(id, d) {
  var c = document.getElementById(id); if (!c) return;
  var total = d.values.reduce(function(a,b){return a+b},0);
  if (!total) {
    var p = document.createElement("p");
    p.className = "empty";
    p.textContent = "No points recorded.";
    c.appendChild(p);
    return;
  }
  var svg = svgEl("svg", {width:"100%", viewBox:"0 0 300 160"});
  var cx=80, cy=80, r=70, angle=-Math.PI/2;
  for (var i = 0; i < d.values.length; i++) {
    if (d.values[i] === 0) continue;
    var el;
    if (d.values[i] === total) {
      el = svgEl("circle", {cx:cx, cy:cy, r:r, fill:d.colors[i]});
    } else {
      var slice = (d.values[i]/total)*Math.PI*2;
      var x1=cx+r*Math.cos(angle), y1=cy+r*Math.sin(angle);
      angle += slice;
      var x2=cx+r*Math.cos(angle), y2=cy+r*Math.sin(angle);
      var large = slice > Math.PI ? 1 : 0;
      el = svgEl("path", {d:"M"+cx+","+cy+" L"+x1+","+y1+" A"+r+","+r+" 0 "+large+",1 "+x2+","+y2+" Z", fill:d.colors[i]});
    }
    var t = svgEl("title", {});
    t.textContent = d.hovers[i];
    el.appendChild(t);
    svg.appendChild(el);
  }
  for (var j = 0; j < d.labels.length; j++) {
    var ly = 16 + j*18;
    svg.appendChild(svgEl("rect", {x:175, y:ly-8, width:10, height:10, fill:d.colors[j], rx:2}));
    var lt = svgEl("text", {x:190, y:ly+1, fill:"currentColor", "font-size":"11"});
    lt.textContent = d.labels[j]+" ("+d.values[j]+")";
    svg.appendChild(lt);
  }
  c.appendChild(svg);
}

renderPie("chart-pie", chartData);

(function(){
  var headers = document.querySelectorAll("#details th[data-col]");
  var sortCol = "", sortAsc = true;
  for (var i = 0; i < headers.length; i++) {
    headers[i].addEventListener("click", (function(th){
      return function(){
        var col = th.dataset.col;
        if (sortCol === col) sortAsc = !sortAsc; else { sortCol = col; sortAsc = true; }
        var tbody = document.querySelector("#details tbody");
        var rows = Array.prototype.slice.call(tbody.querySelectorAll("tr"));
        var ci = Array.prototype.indexOf.call(th.parentNode.children, th);
        rows.sort(function(a,b){
          var av = a.children[ci].textContent, bv = b.children[ci].textContent;
          var an = parseFloat(av), bn = parseFloat(bv);
          if (!isNaN(an) && !isNaN(bn)) return sortAsc ? an-bn : bn-an;
          return sortAsc ? av.localeCompare(bv) : bv.localeCompare(av);
        });
        for (var k = 0; k < rows.length; k++) tbody.appendChild(rows[k]);
        document.querySelectorAll(".sort-arrow").forEach(function(e){e.remove();});
        var arrow = document.createElement("span");
        arrow.className = "sort-arrow";
        arrow.textContent = sortAsc ? " ▲" : " ▼";
        th.appendChild(arrow);
      };
    })(headers[i]));
  }
})();
</script>
</body>
</html>`
