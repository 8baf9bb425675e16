package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type PlotController struct{}

func NewPlotController() *PlotController {
	return &PlotController{}
}

// GetPlotPage serves the scatter-plot shell. Data is fetched from the places
// endpoint once on load; every filter control recomputes locally.
func (pc *PlotController) GetPlotPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(plotHTML))
}

const plotHTML = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Tastemap - Rating vs Reviews</title>
	<style>
		* { margin: 0; padding: 0; box-sizing: border-box; }
		body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', system-ui, sans-serif; background: #f5f6fa; padding: 20px; }
		.container { max-width: 960px; margin: 0 auto; background: white; border-radius: 12px; padding: 30px; box-shadow: 0 4px 20px rgba(0,0,0,0.08); }
		h1 { font-size: 1.6em; color: #333; margin-bottom: 20px; }
		.controls { display: flex; flex-wrap: wrap; gap: 10px; margin-bottom: 20px; }
		input, select { padding: 8px 12px; border: 1px solid #ddd; border-radius: 6px; font-size: 0.95em; }
		input[type="text"] { flex: 2; min-width: 200px; }
		input[type="number"] { width: 80px; }
		label { display: flex; align-items: center; gap: 6px; color: #555; }
		#status { color: #888; margin-bottom: 10px; min-height: 1.2em; }
		canvas { width: 100%; border: 1px solid #eee; border-radius: 6px; }
	</style>
</head>
<body>
	<div class="container">
		<h1>Restaurants: rating vs review count</h1>
		<div class="controls">
			<input type="text" id="search" placeholder="Search by name">
			<input type="number" id="minPrice" min="0" max="4" value="0" title="Min price tier">
			<input type="number" id="maxPrice" min="0" max="4" value="4" title="Max price tier">
			<label><input type="checkbox" id="openNow"> Open now</label>
			<select id="category"><option value="">All categories</option></select>
		</div>
		<div id="status">Loading&hellip;</div>
		<canvas id="plot" width="900" height="500"></canvas>
	</div>
	<script>
	let places = [];

	function filtered() {
		const q = document.getElementById('search').value.toLowerCase();
		const openOnly = document.getElementById('openNow').checked;
		const min = parseInt(document.getElementById('minPrice').value, 10) || 0;
		const max = parseInt(document.getElementById('maxPrice').value, 10);
		const cat = document.getElementById('category').value;
		return places.filter(function (p) {
			if (q && p.name.toLowerCase().indexOf(q) === -1) return false;
			if (openOnly && p.openNow === false) return false;
			if (p.priceLevel < min || p.priceLevel > (isNaN(max) ? 4 : max)) return false;
			if (cat && (p.categories || []).indexOf(cat) === -1) return false;
			return true;
		});
	}

	function render() {
		const canvas = document.getElementById('plot');
		const ctx = canvas.getContext('2d');
		ctx.clearRect(0, 0, canvas.width, canvas.height);
		const pts = filtered();
		const maxReviews = Math.max(1, ...pts.map(function (p) { return p.reviewCount; }));
		ctx.strokeStyle = '#ccc';
		ctx.strokeRect(40, 10, canvas.width - 50, canvas.height - 40);
		pts.forEach(function (p) {
			const x = 40 + (p.reviewCount / maxReviews) * (canvas.width - 60);
			const y = canvas.height - 30 - (p.rating / 5) * (canvas.height - 50);
			ctx.fillStyle = 'rgba(102, 126, 234, 0.7)';
			ctx.beginPath();
			ctx.arc(x, y, 5, 0, Math.PI * 2);
			ctx.fill();
		});
		document.getElementById('status').textContent = pts.length + ' of ' + places.length + ' places';
	}

	function populateCategories() {
		const labels = [];
		places.forEach(function (p) {
			(p.categories || []).forEach(function (c) {
				if (labels.indexOf(c) === -1) labels.push(c);
			});
		});
		labels.sort();
		const select = document.getElementById('category');
		labels.forEach(function (c) {
			const opt = document.createElement('option');
			opt.value = c;
			opt.textContent = c;
			select.appendChild(opt);
		});
	}

	fetch('/api/places')
		.then(function (resp) { return resp.json(); })
		.then(function (data) {
			places = data.places || [];
			populateCategories();
			render();
		})
		.catch(function (err) {
			console.error('places fetch failed', err);
			places = [];
			render();
		});

	['search', 'minPrice', 'maxPrice', 'openNow', 'category'].forEach(function (id) {
		document.getElementById(id).addEventListener('input', render);
	});
	</script>
</body>
</html>`
